package service

import (
	"context"
	"fmt"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// pageComposer renders a stored template for one personalization context.
// It is shared by builder previews and campaign pages.
type pageComposer struct {
	variables domain.VariableService
	renderer  domain.PageRenderer
	logger    logger.Logger
}

func newPageComposer(variables domain.VariableService, renderer domain.PageRenderer, logger logger.Logger) *pageComposer {
	return &pageComposer{variables: variables, renderer: renderer, logger: logger}
}

// compose fills missing values from the owner's variable fallbacks, then
// renders. A failure to load the fallbacks renders without them.
func (c *pageComposer) compose(ctx context.Context, template *domain.PageTemplate, pc domain.PersonalizationContext) (string, error) {
	if pc == nil {
		pc = domain.PersonalizationContext{}
	}
	if c.variables != nil {
		set, err := c.variables.ListVariables(ctx, template.OwnerID)
		if err != nil {
			c.logger.WithField("template_id", template.ID).Warn(fmt.Sprintf("Rendering without variable fallbacks: %v", err))
		} else {
			pc = set.ApplyFallbacks(pc)
		}
	}

	html, err := c.renderer.RenderHTML(template.Sections, pc, pageOptions(template))
	if err != nil {
		c.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to render template: %v", err))
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return html, nil
}

func pageOptions(t *domain.PageTemplate) domain.PageOptions {
	opts := domain.PageOptions{Title: t.Name}
	if t.AccentColor != nil {
		opts.AccentColor = *t.AccentColor
	}
	return opts
}
