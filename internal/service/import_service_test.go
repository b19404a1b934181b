package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/domain/mocks"
	"github.com/luxor-creek/Personalized-App/internal/service/importer"
	pkgmocks "github.com/luxor-creek/Personalized-App/pkg/mocks"
)

const importCSV = "E-mail,First Name,Company\n" +
	"ann@acme.com,Ann,Acme\n" +
	"bob.jones@example.com,,\n"

type importServiceMocks struct {
	templates *mocks.MockTemplateRepository
	campaigns *mocks.MockCampaignService
	variables *mocks.MockVariableService
	renderer  *mocks.MockPageRenderer
}

type stubFetcher struct{ text string }

func (f stubFetcher) Fetch(context.Context, string) (string, error) { return f.text, nil }

func setupImportService(t *testing.T) (*ImportService, importServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := importServiceMocks{
		templates: mocks.NewMockTemplateRepository(ctrl),
		campaigns: mocks.NewMockCampaignService(ctrl),
		variables: mocks.NewMockVariableService(ctrl),
		renderer:  mocks.NewMockPageRenderer(ctrl),
	}
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	svc := NewImportService(m.templates, m.campaigns, m.variables, m.renderer,
		stubFetcher{text: importCSV}, ImportServiceConfig{}, mockLogger)
	t.Cleanup(svc.Close)
	return svc, m
}

// uploadedSession walks a new session up to column mapping
func uploadedSession(t *testing.T, svc *ImportService, ownerID string) string {
	t.Helper()
	ctx := context.Background()
	snap, err := svc.StartImport(ctx, ownerID)
	require.NoError(t, err)
	require.Equal(t, domain.ImportStepChooseSource, snap.Step)

	_, err = svc.ChooseSource(ctx, ownerID, snap.SessionID, domain.ImportSourceFile)
	require.NoError(t, err)
	snap, err = svc.UploadFile(ctx, ownerID, snap.SessionID, "contacts.csv", int64(len(importCSV)), strings.NewReader(importCSV))
	require.NoError(t, err)
	require.Equal(t, domain.ImportStepMapping, snap.Step)
	return snap.SessionID
}

func TestImportService_Flow(t *testing.T) {
	ctx := context.Background()
	svc, m := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	snap, err := svc.GetImport(ctx, "owner1", id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.SessionID)
	assert.Equal(t, "E-mail", snap.Mapping[domain.ContactFieldEmail])
	assert.Equal(t, 2, snap.RecordCount)

	snap, err = svc.GoToPreview(ctx, "owner1", id)
	require.NoError(t, err)
	require.NotNil(t, snap.Preview)
	assert.Equal(t, "p_company=Acme&p_first_name=Ann", snap.Preview.Query)

	snap, err = svc.SelectPreview(ctx, "owner1", id, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob Jones", snap.Preview.Selected.FirstName)

	tpl := testTemplate(headline("a", "Hi {{first_name}}"))
	m.templates.EXPECT().GetTemplate(gomock.Any(), "owner1", "tpl1").Return(tpl, nil)
	m.variables.EXPECT().ListVariables(gomock.Any(), "owner1").Return(domain.NewVariableSet(nil), nil)
	m.renderer.EXPECT().RenderHTML(tpl.Sections, domain.PersonalizationContext{domain.TokenFirstName: "Bob Jones"}, gomock.Any()).Return("<p>Hi Bob Jones</p>", nil)

	html, err := svc.RenderPreview(ctx, "owner1", id, "tpl1")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi Bob Jones</p>", html)

	m.campaigns.EXPECT().GeneratePages(gomock.Any(), "owner1", "camp1", gomock.Len(2)).
		Return(&domain.GeneratePagesResult{CampaignID: "camp1", Succeeded: 2}, nil)
	result, err := svc.Commit(ctx, "owner1", id, "camp1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	_, err = svc.GetImport(ctx, "owner1", id)
	assert.True(t, domain.IsNotFound(err), "session ends after commit")
}

func TestImportService_CommitFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, m := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	m.campaigns.EXPECT().GeneratePages(gomock.Any(), "owner1", "camp1", gomock.Any()).Return(nil, errors.New("db down"))
	_, err := svc.Commit(ctx, "owner1", id, "camp1")
	require.Error(t, err)

	snap, err := svc.GetImport(ctx, "owner1", id)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStepMapping, snap.Step)
}

func TestImportService_CommitAllFailedKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, m := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	m.campaigns.EXPECT().GeneratePages(gomock.Any(), "owner1", "camp1", gomock.Any()).
		Return(&domain.GeneratePagesResult{CampaignID: "camp1", Failed: 2}, nil)
	result, err := svc.Commit(ctx, "owner1", id, "camp1")
	assert.Nil(t, result)
	var handOff *domain.HandOffError
	require.True(t, errors.As(err, &handOff))
	assert.Equal(t, 2, handOff.Failed)

	snap, err := svc.GetImport(ctx, "owner1", id)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStepMapping, snap.Step)

	m.campaigns.EXPECT().GeneratePages(gomock.Any(), "owner1", "camp1", gomock.Any()).
		Return(&domain.GeneratePagesResult{CampaignID: "camp1", Succeeded: 1, Failed: 1}, nil)
	result, err = svc.Commit(ctx, "owner1", id, "camp1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
}

func TestImportService_CommitRequiresEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	_, err := svc.MapColumn(ctx, "owner1", id, domain.ContactFieldEmail, "")
	require.NoError(t, err)
	_, err = svc.Commit(ctx, "owner1", id, "camp1")
	assert.True(t, domain.IsValidationError(err))
}

func TestImportService_SessionsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	_, err := svc.GetImport(ctx, "owner2", id)
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.Back(ctx, "owner2", id)
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.GetImport(ctx, "owner1", "")
	assert.True(t, domain.IsValidationError(err))
}

func TestImportService_TransitionsAndCancel(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupImportService(t)
	id := uploadedSession(t, svc, "owner1")

	_, err := svc.SelectPreview(ctx, "owner1", id, 0)
	var terr *domain.TransitionError
	assert.True(t, errors.As(err, &terr))

	_, err = svc.RenderPreview(ctx, "owner1", id, "tpl1")
	assert.True(t, errors.As(err, &terr))

	snap, err := svc.Back(ctx, "owner1", id)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStepIngest, snap.Step)

	require.NoError(t, svc.CancelImport(ctx, "owner1", id))
	_, err = svc.GetImport(ctx, "owner1", id)
	assert.True(t, domain.IsNotFound(err))
}

func TestImportService_FetchSheet(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupImportService(t)

	snap, err := svc.StartImport(ctx, "owner1")
	require.NoError(t, err)
	_, err = svc.ChooseSource(ctx, "owner1", snap.SessionID, domain.ImportSourceSheet)
	require.NoError(t, err)

	_, err = svc.FetchSheet(ctx, "owner1", snap.SessionID, "https://example.com/not-a-sheet")
	assert.True(t, domain.IsValidationError(err))

	snap, err = svc.FetchSheet(ctx, "owner1", snap.SessionID, "https://docs.google.com/spreadsheets/d/abc123/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStepMapping, snap.Step)
	assert.Equal(t, domain.ImportSourceSheet, snap.Source)
}

func TestImportService_UploadTooLarge(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupImportService(t)
	svc.cfg.Pipeline = &importer.Config{MaxUploadBytes: 8}

	snap, err := svc.StartImport(ctx, "owner1")
	require.NoError(t, err)
	_, err = svc.ChooseSource(ctx, "owner1", snap.SessionID, domain.ImportSourceFile)
	require.NoError(t, err)

	_, err = svc.UploadFile(ctx, "owner1", snap.SessionID, "big.csv", -1, strings.NewReader(importCSV))
	var tooLarge *domain.TooLargeError
	assert.True(t, errors.As(err, &tooLarge))
}
