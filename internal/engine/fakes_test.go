package engine_test

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/engine"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/sources"
)

const testPollInterval = 10 * time.Millisecond

// memJobs is an in-memory job repository that records progress writes.
type memJobs struct {
	mu             sync.Mutex
	jobs           map[string]*domain.Job
	progressWrites map[string][]domain.Progress
	statusWrites   map[string][]string

	// afterGet runs after GetByID returns a job, outside the lock.
	afterGet func(id string)
}

func newMemJobs() *memJobs {
	return &memJobs{
		jobs:           map[string]*domain.Job{},
		progressWrites: map[string][]domain.Progress{},
		statusWrites:   map[string][]string{},
	}
}

func (m *memJobs) Create(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.Status == "" {
		job.Status = domain.JobStatusPending
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memJobs) GetByID(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	job, ok := m.jobs[id]
	var cp domain.Job
	if ok {
		cp = *job
	}
	hook := m.afterGet
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, database.ErrNotFound)
	}
	if hook != nil {
		hook(id)
	}
	return &cp, nil
}

func (m *memJobs) GetStatus(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return "", fmt.Errorf("job %s: %w", id, database.ErrNotFound)
	}
	return job.Status, nil
}

func (m *memJobs) List(_ context.Context, params database.ListJobsParams) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Job
	for _, job := range m.jobs {
		if params.Status == "" || job.Status == params.Status {
			cp := *job
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memJobs) Count(ctx context.Context, status string) (int, error) {
	jobs, err := m.List(ctx, database.ListJobsParams{Status: status})
	return len(jobs), err
}

func (m *memJobs) TransitionStatus(ctx context.Context, id string, from []string, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, database.ErrNotFound)
	}
	if !slices.Contains(from, job.Status) {
		return fmt.Errorf("job %s is %s: %w", id, job.Status, database.ErrStatusConflict)
	}
	job.Status = status
	m.statusWrites[id] = append(m.statusWrites[id], status)
	return nil
}

func (m *memJobs) UpdateProgress(ctx context.Context, id string, p domain.Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, database.ErrNotFound)
	}
	job.TotalURLs, job.ProcessedURLs = p.TotalURLs, p.ProcessedURLs
	job.CompaniesFound, job.ContactsFound, job.ErrorsCount = p.CompaniesFound, p.ContactsFound, p.ErrorsCount
	m.progressWrites[id] = append(m.progressWrites[id], p)
	return nil
}

func (m *memJobs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

func (m *memJobs) FailStale(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, job := range m.jobs {
		if job.Status == domain.JobStatusRunning || job.Status == domain.JobStatusPending {
			job.Status = domain.JobStatusFailed
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memJobs) setStatus(id, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[id].Status = status
}

func (m *memJobs) onGet(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.afterGet = fn
}

func (m *memJobs) progressCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.progressWrites[id])
}

// memLogs collects job log entries.
type memLogs struct {
	mu      sync.Mutex
	entries []domain.LogEntry
}

func (m *memLogs) Add(_ context.Context, entry *domain.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memLogs) ListByJob(_ context.Context, jobID string, _, _ int) ([]*domain.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.LogEntry
	for i := range m.entries {
		if m.entries[i].JobID == jobID {
			e := m.entries[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func (m *memLogs) messages(jobID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries {
		if e.JobID == jobID {
			out = append(out, e.Message)
		}
	}
	return out
}

func (m *memLogs) count(jobID, message string) int {
	n := 0
	for _, msg := range m.messages(jobID) {
		if msg == message {
			n++
		}
	}
	return n
}

// memCompanies keys companies by domain like the unique index.
type memCompanies struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*domain.Company
	deleted []string
}

func newMemCompanies() *memCompanies {
	return &memCompanies{byID: map[int64]*domain.Company{}}
}

func (m *memCompanies) Create(_ context.Context, c *domain.Company) (*domain.Company, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Domain == c.Domain {
			cp := *existing
			return &cp, false, nil
		}
	}
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	if stored.Country == "" {
		stored.Country = domain.DefaultCountry
	}
	m.byID[stored.ID] = &stored
	cp := stored
	return &cp, true, nil
}

func (m *memCompanies) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanies) GetByDomain(_ context.Context, companyDomain string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Domain == companyDomain {
			cp := *c
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memCompanies) ExistsDomain(ctx context.Context, companyDomain string) (bool, error) {
	_, err := m.GetByDomain(ctx, companyDomain)
	return err == nil, nil
}

func (m *memCompanies) Update(_ context.Context, c *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return database.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCompanies) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	m.deleted = append(m.deleted, c.Domain)
	delete(m.byID, id)
	return nil
}

func (m *memCompanies) ListByJob(_ context.Context, jobID string) ([]*domain.Company, error) {
	return m.filter(func(c *domain.Company) bool { return c.JobID != nil && *c.JobID == jobID }), nil
}

func (m *memCompanies) ListByIndustries(_ context.Context, industries []string) ([]*domain.Company, error) {
	return m.filter(func(c *domain.Company) bool {
		if len(industries) == 0 {
			return true
		}
		for _, ind := range industries {
			if c.Industry == ind {
				return true
			}
		}
		return false
	}), nil
}

func (m *memCompanies) List(_ context.Context, f database.CompanyFilter) ([]*domain.Company, error) {
	return m.filter(func(c *domain.Company) bool {
		return (f.Industry == "" || c.Industry == f.Industry) && (f.State == "" || c.State == f.State)
	}), nil
}

func (m *memCompanies) Count(ctx context.Context, f database.CompanyFilter) (int, error) {
	list, err := m.List(ctx, f)
	return len(list), err
}

func (m *memCompanies) filter(keep func(c *domain.Company) bool) []*domain.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Company
	for _, c := range m.byID {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memCompanies) domains() []string {
	var out []string
	for _, c := range m.filter(func(*domain.Company) bool { return true }) {
		out = append(out, c.Domain)
	}
	sort.Strings(out)
	return out
}

func (m *memCompanies) seed(c domain.Company) *domain.Company {
	stored, _, _ := m.Create(context.Background(), &c)
	return stored
}

// memContacts enforces (company, email) uniqueness for non-empty emails.
type memContacts struct {
	mu       sync.Mutex
	nextID   int64
	contacts []*domain.Contact
}

func (m *memContacts) Create(_ context.Context, c *domain.Contact) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.Email != "" {
		for _, existing := range m.contacts {
			if existing.CompanyID == c.CompanyID && existing.Email == c.Email {
				return false, nil
			}
		}
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.contacts = append(m.contacts, &cp)
	return true, nil
}

func (m *memContacts) ListByCompany(_ context.Context, companyID int64) ([]*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Contact
	for _, c := range m.contacts {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memContacts) UpdateEmail(_ context.Context, id int64, email string, confidence float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.ID == id && c.Email == "" {
			c.Email, c.EmailConfidence = email, confidence
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) byName(fullName string) (domain.Contact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.FullName == fullName {
			return *c, true
		}
	}
	return domain.Contact{}, false
}

// memQueue records queue bookkeeping.
type memQueue struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*domain.QueueItem
}

func (m *memQueue) Add(_ context.Context, item *domain.QueueItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[int64]*domain.QueueItem{}
	}
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memQueue) Finish(_ context.Context, id int64, status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return database.ErrNotFound
	}
	item.Status = status
	if errMsg != "" {
		item.ErrorMessage = &errMsg
	}
	return nil
}

func (m *memQueue) CountByStatus(_ context.Context, jobID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, item := range m.items {
		if item.JobID == jobID {
			out[item.Status]++
		}
	}
	return out, nil
}

// fakeSource returns fixed results for every query and drafts keyed by URL.
type fakeSource struct {
	name    string
	kind    sources.Kind
	results []sources.Result
	drafts  map[string]*sources.Draft

	// onSearch runs before each search with the 1-based call number.
	onSearch func(ctx context.Context, call int) error
	// onScrape runs before each scrape.
	onScrape func(ctx context.Context, r sources.Result)

	mu       sync.Mutex
	searches int
	scraped  []string
}

func (s *fakeSource) Name() string       { return s.name }
func (s *fakeSource) Kind() sources.Kind { return s.kind }

func (s *fakeSource) Search(ctx context.Context, _ string) ([]sources.Result, error) {
	s.mu.Lock()
	s.searches++
	call := s.searches
	s.mu.Unlock()

	if s.onSearch != nil {
		if err := s.onSearch(ctx, call); err != nil {
			return nil, err
		}
	}
	out := make([]sources.Result, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *fakeSource) ScrapeCompany(ctx context.Context, r sources.Result) (*sources.Draft, error) {
	if s.onScrape != nil {
		s.onScrape(ctx, r)
	}
	s.mu.Lock()
	s.scraped = append(s.scraped, r.URL)
	s.mu.Unlock()

	draft, ok := s.drafts[r.URL]
	if !ok || draft == nil {
		return nil, nil
	}
	cp := *draft
	return &cp, nil
}

func (s *fakeSource) searchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}

// fakeFetcher serves canned pages. Unknown URLs yield no page.
type fakeFetcher struct {
	pages map[string]string

	mu   sync.Mutex
	urls []string
}

func (f *fakeFetcher) Get(ctx context.Context, rawURL string) (*fetcher.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.urls = append(f.urls, rawURL)
	f.mu.Unlock()

	body, ok := f.pages[rawURL]
	if !ok {
		return nil, nil
	}
	return &fetcher.Response{URL: rawURL, StatusCode: 200, Body: []byte(body)}, nil
}

// harness wires an engine to in-memory repositories.
type harness struct {
	jobs      *memJobs
	logs      *memLogs
	companies *memCompanies
	contacts  *memContacts
	queue     *memQueue
	engine    *engine.Engine
}

func newHarness(t *testing.T, cfg engine.Config, deps engine.Deps) *harness {
	t.Helper()

	h := &harness{
		jobs:      newMemJobs(),
		logs:      &memLogs{},
		companies: newMemCompanies(),
		contacts:  &memContacts{},
		queue:     &memQueue{},
	}
	deps.Jobs = h.jobs
	deps.Logs = h.logs
	deps.Companies = h.companies
	deps.Contacts = h.contacts
	deps.Queue = h.queue
	if cfg.StatusPollInterval == 0 {
		cfg.StatusPollInterval = testPollInterval
	}
	h.engine = engine.New(cfg, deps)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.engine.Shutdown(ctx)
	})
	return h
}

func (h *harness) createJob(t *testing.T, job domain.Job) string {
	t.Helper()
	if job.ID == "" {
		job.ID = strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))
	}
	require.NoError(t, h.jobs.Create(context.Background(), &job))
	return job.ID
}

func (h *harness) status(t *testing.T, id string) string {
	t.Helper()
	status, err := h.jobs.GetStatus(context.Background(), id)
	require.NoError(t, err)
	return status
}

func intPtr(n int) *int { return &n }
