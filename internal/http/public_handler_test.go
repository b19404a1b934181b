package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/domain/mocks"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

func setupPublicHandlerTest(t *testing.T) (*mocks.MockTemplateService, *mocks.MockCampaignService, *PublicHandler) {
	ctrl := gomock.NewController(t)
	templates := mocks.NewMockTemplateService(ctrl)
	campaigns := mocks.NewMockCampaignService(ctrl)
	return templates, campaigns, NewPublicHandler(templates, campaigns, "1.4", logger.NewTestLogger(t))
}

func TestPublicHandler_BuilderPreview(t *testing.T) {
	t.Run("personalizes from query", func(t *testing.T) {
		templates, _, h := setupPublicHandlerTest(t)
		templates.EXPECT().RenderPreview(gomock.Any(), "spring-launch", domain.PersonalizationContext{
			"first_name": "Ann",
			"company":    "Acme",
		}).Return(`<html><body><h1 class="headline">Hi Ann from Acme</h1></body></html>`, nil)

		req := httptest.NewRequest(http.MethodGet, "/builder-preview/spring-launch?p_first_name=Ann&p_company=Acme&utm=x", nil)
		w := serve(t, h, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		assert.Equal(t, "Hi Ann from Acme", doc.Find("h1.headline").Text())
	})

	t.Run("unknown slug", func(t *testing.T) {
		templates, _, h := setupPublicHandlerTest(t)
		templates.EXPECT().RenderPreview(gomock.Any(), "missing", gomock.Any()).Return("", domain.ErrTemplateNotFound("missing"))

		w := serve(t, h, httptest.NewRequest(http.MethodGet, "/builder-preview/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Page not found")
	})

	t.Run("render failure", func(t *testing.T) {
		templates, _, h := setupPublicHandlerTest(t)
		templates.EXPECT().RenderPreview(gomock.Any(), "broken", gomock.Any()).
			Return("", domain.NewConfigurationError("section s1 has unknown type"))

		w := serve(t, h, httptest.NewRequest(http.MethodGet, "/builder-preview/broken", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "s1")
	})

	t.Run("post is rejected", func(t *testing.T) {
		_, _, h := setupPublicHandlerTest(t)
		w := serve(t, h, httptest.NewRequest(http.MethodPost, "/builder-preview/spring-launch", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestPublicHandler_View(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		_, campaigns, h := setupPublicHandlerTest(t)
		campaigns.EXPECT().RenderPersonalizedPage(gomock.Any(), "tok123").Return("<p>Hi Ann</p>", nil)

		w := serve(t, h, httptest.NewRequest(http.MethodGet, "/view/tok123", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<p>Hi Ann</p>", w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		_, campaigns, h := setupPublicHandlerTest(t)
		campaigns.EXPECT().RenderPersonalizedPage(gomock.Any(), "forged").Return("", domain.NewNotFoundError("page", "forged"))

		w := serve(t, h, httptest.NewRequest(http.MethodGet, "/view/forged", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		_, campaigns, h := setupPublicHandlerTest(t)
		campaigns.EXPECT().RenderPersonalizedPage(gomock.Any(), "tok123").Return("", errors.New("db down"))

		w := serve(t, h, httptest.NewRequest(http.MethodGet, "/view/tok123", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPublicHandler_Health(t *testing.T) {
	_, _, h := setupPublicHandlerTest(t)

	w := serve(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.4", decodeBody(t, w)["version"])
}
