package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/render"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

type renderOptions struct {
	set      []string
	title    string
	accent   string
	out      string
	contacts string
	mapping  []string
	limit    int
}

type pageSource struct {
	sections []domain.Section
	options  domain.PageOptions
}

func newRenderCmd(newLogger func(*cobra.Command) logger.Logger) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a page template to standalone HTML",
		Long: `Render reads either an exported template object with a "sections"
array or a bare sections array, substitutes {{tokens}} from --set and writes HTML.
Tokens without a value are left as the literal {{token}}.

With --contacts every usable record of the contact file is rendered into its
own file under the --out directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd).WithField("file", args[0])
			page, err := loadPage(args[0], opts)
			if err != nil {
				return err
			}
			catalog, err := domain.NewSectionCatalog()
			if err != nil {
				return err
			}
			renderer, err := render.NewRenderer(catalog)
			if err != nil {
				return err
			}
			values, err := parseAssignments(opts.set)
			if err != nil {
				return err
			}

			if opts.contacts != "" {
				return renderContacts(cmd, log, renderer, page, values, opts)
			}
			return renderSingle(cmd, log, renderer, page, values, opts.out)
		},
	}
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Personalization value as token=value (repeatable)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title (defaults to the template name)")
	cmd.Flags().StringVar(&opts.accent, "accent", "", "Accent color (defaults to the template accent)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file, or output directory with --contacts")
	cmd.Flags().StringVar(&opts.contacts, "contacts", "", "Contact file to render one page per record from")
	cmd.Flags().StringArrayVar(&opts.mapping, "map", nil, "Override a contact mapping as field=column (repeatable)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Render at most this many contacts, 0 renders all")
	return cmd
}

func loadPage(path string, opts renderOptions) (*pageSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, domain.NewValidationError("template file must be valid JSON")
	}

	doc := gjson.ParseBytes(raw)
	sectionsRaw := raw
	page := &pageSource{options: domain.PageOptions{Title: opts.title, AccentColor: opts.accent}}
	if doc.IsObject() {
		sectionsRaw = []byte(doc.Get("sections").Raw)
		if page.options.Title == "" {
			page.options.Title = doc.Get("name").String()
		}
		if page.options.AccentColor == "" {
			page.options.AccentColor = doc.Get("accent_color").String()
		}
	}

	page.sections, err = domain.DecodeSections(sectionsRaw)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func renderSingle(cmd *cobra.Command, log logger.Logger, renderer *render.Renderer, page *pageSource, values map[string]string, out string) error {
	html, err := renderer.RenderHTML(page.sections, domain.NewPersonalizationContext(values), page.options)
	if err != nil {
		return err
	}
	log.WithField("sections", len(page.sections)).Debug("Rendered page")

	if out == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), html)
		return err
	}
	return writeFile(out, html)
}

func renderContacts(cmd *cobra.Command, log logger.Logger, renderer *render.Renderer, page *pageSource, values map[string]string, opts renderOptions) error {
	if opts.out == "" {
		return domain.NewValidationError("--out directory is required with --contacts")
	}
	records, err := loadContacts(cmd.Context(), opts.contacts, opts.mapping)
	if err != nil {
		return err
	}
	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := range records {
		// --set values are fallbacks, contact fields win
		pc := domain.PersonalizationFromContact(&records[i])
		for k, v := range values {
			if _, ok := pc[k]; !ok && v != "" {
				pc[k] = v
			}
		}

		html, err := renderer.RenderHTML(page.sections, pc, page.options)
		if err != nil {
			return fmt.Errorf("failed to render page for %s: %w", records[i].Email, err)
		}
		name := fmt.Sprintf("%03d-%s.html", i+1, fileSlug(records[i].Email))
		if err := writeFile(filepath.Join(opts.out, name), html); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	log.WithField("pages", len(records)).Info("Rendered contact pages")
	return nil
}

func fileSlug(s string) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "contact"
	}
	return slug
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
