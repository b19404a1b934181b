// Package importer turns an uploaded file or a shared spreadsheet into
// contact records through a small state machine:
//
//	choose_source -> upload_or_fetch -> column_mapping -> preview -> commit
//
// with Back moving one step towards choose_source. Each step is a distinct
// state type and every transition checks the state it starts from.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/tabular"
)

// Committer receives the materialized records when an import is committed
type Committer interface {
	Commit(ctx context.Context, records []domain.ContactRecord) error
}

// CommitFunc adapts a function to Committer
type CommitFunc func(ctx context.Context, records []domain.ContactRecord) error

func (f CommitFunc) Commit(ctx context.Context, records []domain.ContactRecord) error {
	return f(ctx, records)
}

type state interface {
	step() domain.ImportStep
}

type chooseSourceState struct{}

type ingestState struct {
	source  domain.ImportSource
	pending bool
}

type mappingState struct {
	source   domain.ImportSource
	table    *tabular.Table
	mapping  domain.FieldMapping
	records  []domain.ContactRecord
	warnings []domain.ImportWarning
}

type previewState struct {
	*mappingState
	index int
}

func (chooseSourceState) step() domain.ImportStep { return domain.ImportStepChooseSource }
func (*ingestState) step() domain.ImportStep      { return domain.ImportStepIngest }
func (*mappingState) step() domain.ImportStep     { return domain.ImportStepMapping }
func (*previewState) step() domain.ImportStep     { return domain.ImportStepPreview }

// Pipeline is one import session. It is safe for concurrent use; at most one
// ingestion is in flight at a time.
type Pipeline struct {
	mu         sync.Mutex
	state      state
	epoch      uint64
	committing bool
	cfg        *Config
	matcher    ColumnMatcher
	fetcher    SheetFetcher
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConfig sets the pipeline bounds. Zero fields keep their defaults.
func WithConfig(cfg *Config) Option {
	return func(p *Pipeline) { p.cfg = cfg.withDefaults() }
}

// WithMatcher replaces the column auto-mapping strategy
func WithMatcher(m ColumnMatcher) Option {
	return func(p *Pipeline) { p.matcher = m }
}

// WithSheetFetcher sets the client used for spreadsheet imports
func WithSheetFetcher(f SheetFetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// NewPipeline returns a pipeline in the choose_source step
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		state:   chooseSourceState{},
		cfg:     DefaultConfig(),
		matcher: NewAliasMatcher(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Step returns the current step
func (p *Pipeline) Step() domain.ImportStep {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.step()
}

// ChooseSource picks where rows come from and moves to upload_or_fetch
func (p *Pipeline) ChooseSource(source domain.ImportSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.state.(chooseSourceState); !ok {
		return p.illegal("choose a source")
	}
	p.state = &ingestState{source: source}
	return nil
}

// IngestFile reads an uploaded file. size is the declared size, or -1 when
// unknown; the body is bounded independently of it.
func (p *Pipeline) IngestFile(ctx context.Context, size int64, body io.Reader) error {
	limit := p.cfg.MaxUploadBytes
	if size > limit {
		return &domain.TooLargeError{Size: size, Limit: limit}
	}
	return p.ingest(ctx, domain.ImportSourceFile, func(context.Context) (string, error) {
		data, err := io.ReadAll(io.LimitReader(body, limit+1))
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		if int64(len(data)) > limit {
			return "", &domain.TooLargeError{Size: int64(len(data)), Limit: limit}
		}
		return string(data), nil
	})
}

// FetchSheet downloads a shared Google Sheet as CSV
func (p *Pipeline) FetchSheet(ctx context.Context, shareURL string) error {
	exportURL, err := SheetExportURL(shareURL)
	if err != nil {
		return err
	}
	if p.fetcher == nil {
		return domain.NewConfigurationError("no sheet fetcher configured")
	}
	return p.ingest(ctx, domain.ImportSourceSheet, func(ctx context.Context) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, p.cfg.SheetFetchTimeout)
		defer cancel()
		return p.fetcher.Fetch(ctx, exportURL)
	})
}

// ingest runs load outside the lock. If the pipeline left the ingest step
// while load was running, the result is dropped.
func (p *Pipeline) ingest(ctx context.Context, source domain.ImportSource, load func(context.Context) (string, error)) error {
	p.mu.Lock()
	st, ok := p.state.(*ingestState)
	if !ok || st.source != source {
		err := p.illegal("ingest from " + string(source))
		p.mu.Unlock()
		return err
	}
	if st.pending {
		p.mu.Unlock()
		return ErrIngestionPending
	}
	st.pending = true
	epoch := p.epoch
	p.mu.Unlock()

	text, loadErr := load(ctx)
	var table *tabular.Table
	if loadErr == nil {
		table, loadErr = tabular.Parse(text)
		if errors.Is(loadErr, tabular.ErrInsufficientData) {
			loadErr = &domain.InsufficientDataError{Message: msgInsufficientData}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.epoch != epoch || p.state != state(st) {
		return ErrIngestionDiscarded
	}
	st.pending = false
	if loadErr != nil {
		return loadErr
	}
	p.state = p.newMapping(source, table)
	return nil
}

func (p *Pipeline) newMapping(source domain.ImportSource, table *tabular.Table) *mappingState {
	m := &mappingState{
		source:  source,
		table:   table,
		mapping: p.matcher.Match(table.Headers).Clone(),
	}
	m.refresh()
	return m
}

func (m *mappingState) refresh() {
	m.records = Materialize(m.table, m.mapping)
	m.warnings = Warnings(m.records, m.mapping)
}

// MapColumn points field at column. An empty column unmaps the field.
func (p *Pipeline) MapColumn(field domain.ContactField, column string) error {
	if err := field.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.state.(*mappingState)
	if !ok {
		return p.illegal("change the column mapping")
	}
	column = strings.TrimSpace(column)
	if column == "" {
		delete(m.mapping, field)
	} else {
		if !m.table.HasColumn(column) {
			return domain.NewValidationError(fmt.Sprintf("unknown column: %s", column))
		}
		m.mapping[field] = column
	}
	m.refresh()
	return nil
}

// UnmapColumn clears the column for field
func (p *Pipeline) UnmapColumn(field domain.ContactField) error {
	return p.MapColumn(field, "")
}

// Back moves one step towards choose_source. Leaving upload_or_fetch discards
// any ingestion still in flight.
func (p *Pipeline) Back() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch st := p.state.(type) {
	case *ingestState:
		p.epoch++
		p.state = chooseSourceState{}
	case *mappingState:
		p.state = &ingestState{source: st.source}
	case *previewState:
		p.state = st.mappingState
	default:
		return p.illegal("go back")
	}
	return nil
}

// checkReady enforces the exit condition of the mapping step
func (m *mappingState) checkReady() error {
	if !m.mapping.IsMapped(domain.ContactFieldEmail) {
		return domain.NewValidationError(msgEmailNotMapped)
	}
	if len(m.records) == 0 {
		return domain.NewValidationError(msgNoValidRows)
	}
	return nil
}

// ToPreview moves from column_mapping to preview once email is mapped and at least one record exists
func (p *Pipeline) ToPreview() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.state.(*mappingState)
	if !ok {
		return p.illegal("preview")
	}
	if err := m.checkReady(); err != nil {
		return err
	}
	p.state = &previewState{mappingState: m}
	return nil
}

// SelectPreview selects which of the previewable records is shown
func (p *Pipeline) SelectPreview(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pv, ok := p.state.(*previewState)
	if !ok {
		return p.illegal("select a preview record")
	}
	if index < 0 || index >= len(p.previewRecords(pv.mappingState)) {
		return domain.NewValidationError(fmt.Sprintf("preview index %d is out of range", index))
	}
	pv.index = index
	return nil
}

// Selected returns the record currently shown in the preview
func (p *Pipeline) Selected() (domain.ContactRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pv, ok := p.state.(*previewState)
	if !ok {
		return domain.ContactRecord{}, p.illegal("read the preview record")
	}
	return pv.records[pv.index], nil
}

// Records returns a copy of the materialized records
func (p *Pipeline) Records() ([]domain.ContactRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.mapping()
	if !ok {
		return nil, p.illegal("read records")
	}
	out := make([]domain.ContactRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Commit hands every record to c. It is allowed from column_mapping or
// preview once the mapping step's exit condition holds. c runs without the
// pipeline lock held. On success the pipeline resets to choose_source unless
// it was reset meanwhile; on failure it keeps its state.
func (p *Pipeline) Commit(ctx context.Context, c Committer) error {
	p.mu.Lock()
	m, ok := p.mapping()
	if !ok {
		err := p.illegal("commit")
		p.mu.Unlock()
		return err
	}
	if err := m.checkReady(); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.committing {
		p.mu.Unlock()
		return ErrCommitPending
	}
	p.committing = true
	epoch := p.epoch
	records := make([]domain.ContactRecord, len(m.records))
	copy(records, m.records)
	p.mu.Unlock()

	commitErr := c.Commit(ctx, records)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.committing = false
	if commitErr != nil {
		return commitErr
	}
	if p.epoch == epoch {
		p.epoch++
		p.state = chooseSourceState{}
	}
	return nil
}

// Reset discards everything and returns to choose_source
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.epoch++
	p.state = chooseSourceState{}
}

func (p *Pipeline) mapping() (*mappingState, bool) {
	switch st := p.state.(type) {
	case *mappingState:
		return st, true
	case *previewState:
		return st.mappingState, true
	}
	return nil, false
}

func (p *Pipeline) previewRecords(m *mappingState) []domain.ContactRecord {
	if len(m.records) > p.cfg.PreviewLimit {
		return m.records[:p.cfg.PreviewLimit]
	}
	return m.records
}

func (p *Pipeline) illegal(action string) error {
	return &domain.TransitionError{From: p.state.step(), Action: action}
}

// Snapshot returns a read-only view of the session
func (p *Pipeline) Snapshot() domain.ImportSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := domain.ImportSnapshot{Step: p.state.step()}
	switch st := p.state.(type) {
	case *ingestState:
		snap.Source = st.source
		snap.Pending = st.pending
	case *mappingState, *previewState:
		m, _ := p.mapping()
		snap.Source = m.source
		snap.Headers = append([]string(nil), m.table.Headers...)
		snap.SampleRows = m.table.Sample(p.cfg.SampleRows)
		snap.TargetFields = domain.TargetFields()
		snap.Mapping = m.mapping.Clone()
		snap.RecordCount = len(m.records)
		snap.Warnings = append([]domain.ImportWarning(nil), m.warnings...)
		if pv, ok := st.(*previewState); ok {
			records := p.previewRecords(m)
			selected := records[pv.index]
			snap.Preview = &domain.ImportPreview{
				Records:  append([]domain.ContactRecord(nil), records...),
				Index:    pv.index,
				Selected: selected,
				Query:    domain.PersonalizationFromContact(&selected).Query().Encode(),
			}
		}
	}
	return snap
}
