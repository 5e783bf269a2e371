package certificatesrv

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/adilnv/internlink/internship/certificate"
	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
)

// ----------------------------------------------------------------------------
// In-memory fakes
// ----------------------------------------------------------------------------

type fakeCertificateRepo struct {
	mu    sync.Mutex
	certs map[kernel.CertificateID]*certificate.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{certs: make(map[kernel.CertificateID]*certificate.Certificate)}
}

func (r *fakeCertificateRepo) Create(ctx context.Context, c *certificate.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.certs {
		if existing.Code == c.Code {
			return certificate.ErrCodeCollision().WithDetail("code", c.Code)
		}
		if existing.EvaluationID == c.EvaluationID || existing.CandidatureID == c.CandidatureID {
			return certificate.ErrAlreadyIssued().WithDetail("evaluation_id", c.EvaluationID.String())
		}
	}
	clone := *c
	r.certs[c.ID] = &clone
	return nil
}

func (r *fakeCertificateRepo) GetByID(ctx context.Context, id kernel.CertificateID) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.certs[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, certificate.ErrCertificateNotFound()
}

func (r *fakeCertificateRepo) GetByCode(ctx context.Context, code string) (*certificate.Certificate, error) {
	return r.find(func(c *certificate.Certificate) bool { return c.Code == code })
}

func (r *fakeCertificateRepo) GetByEvaluationID(ctx context.Context, evaluationID kernel.EvaluationID) (*certificate.Certificate, error) {
	return r.find(func(c *certificate.Certificate) bool { return c.EvaluationID == evaluationID })
}

func (r *fakeCertificateRepo) GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*certificate.Certificate, error) {
	return r.find(func(c *certificate.Certificate) bool { return c.CandidatureID == candidatureID })
}

func (r *fakeCertificateRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r *fakeCertificateRepo) IncrementVerification(ctx context.Context, code string) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.certs {
		if c.Code == code {
			c.VerificationCount++
			clone := *c
			return &clone, nil
		}
	}
	return nil, certificate.ErrCertificateNotFound().WithDetail("code", code)
}

func (r *fakeCertificateRepo) MarkDownloaded(ctx context.Context, id kernel.CertificateID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok {
		return certificate.ErrCertificateNotFound()
	}
	c.Status = certificate.CertificateStatusDownloaded
	c.LastDownloadedAt = &at
	return nil
}

func (r *fakeCertificateRepo) UpdateDocumentURL(ctx context.Context, id kernel.CertificateID, url kernel.BucketURL) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok {
		return certificate.ErrCertificateNotFound()
	}
	c.DocumentURL = url
	return nil
}

func (r *fakeCertificateRepo) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[certificate.Certificate], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []certificate.Certificate
	for _, c := range r.certs {
		if c.InternID == internID {
			items = append(items, *c)
		}
	}
	return &kernel.Paginated[certificate.Certificate]{
		Items: items,
		Page:  kernel.NewPage(pagination, len(items)),
		Empty: len(items) == 0,
	}, nil
}

func (r *fakeCertificateRepo) find(match func(*certificate.Certificate) bool) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.certs {
		if match(c) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, certificate.ErrCertificateNotFound()
}

func (r *fakeCertificateRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.certs)
}

// raceCertificateRepo simulates losing the insert race: a competing
// certificate commits between the pre-check and the insert, so Create
// hits the uniqueness constraint.
type raceCertificateRepo struct {
	*fakeCertificateRepo
	winner *certificate.Certificate
}

func (r *raceCertificateRepo) Create(ctx context.Context, c *certificate.Certificate) error {
	r.mu.Lock()
	r.certs[r.winner.ID] = r.winner
	r.mu.Unlock()
	return certificate.ErrAlreadyIssued().WithDetail("evaluation_id", c.EvaluationID.String())
}

type fakeEvaluationRepo struct {
	evaluations map[kernel.EvaluationID]*evaluation.Evaluation
}

func (r *fakeEvaluationRepo) CreateWithRatings(ctx context.Context, e *evaluation.Evaluation) error {
	r.evaluations[e.ID] = e
	return nil
}

func (r *fakeEvaluationRepo) Update(ctx context.Context, id kernel.EvaluationID, e *evaluation.Evaluation) error {
	r.evaluations[id] = e
	return nil
}

func (r *fakeEvaluationRepo) ReplaceRatings(ctx context.Context, id kernel.EvaluationID, ratings []evaluation.Rating, aggregate *float64) error {
	return nil
}

func (r *fakeEvaluationRepo) UpdateAggregate(ctx context.Context, id kernel.EvaluationID, aggregate *float64) error {
	return nil
}

func (r *fakeEvaluationRepo) GetByID(ctx context.Context, id kernel.EvaluationID) (*evaluation.Evaluation, error) {
	if e, ok := r.evaluations[id]; ok {
		return e, nil
	}
	return nil, evaluation.ErrEvaluationNotFound()
}

func (r *fakeEvaluationRepo) GetByStageID(ctx context.Context, stageID kernel.StageID) (*evaluation.Evaluation, error) {
	for _, e := range r.evaluations {
		if e.StageID == stageID {
			return e, nil
		}
	}
	return nil, evaluation.ErrEvaluationNotFound()
}

func (r *fakeEvaluationRepo) ExistsByStageID(ctx context.Context, stageID kernel.StageID) (bool, error) {
	_, err := r.GetByStageID(ctx, stageID)
	return err == nil, nil
}

type fakeStageRepo struct {
	stages map[kernel.StageID]*stage.Stage
}

func (r *fakeStageRepo) Create(ctx context.Context, s *stage.Stage) error {
	r.stages[s.ID] = s
	return nil
}

func (r *fakeStageRepo) Update(ctx context.Context, id kernel.StageID, s *stage.Stage) error {
	r.stages[id] = s
	return nil
}

func (r *fakeStageRepo) GetByID(ctx context.Context, id kernel.StageID) (*stage.Stage, error) {
	if s, ok := r.stages[id]; ok {
		return s, nil
	}
	return nil, stage.ErrStageNotFound()
}

func (r *fakeStageRepo) GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*stage.Stage, error) {
	for _, s := range r.stages {
		if s.CandidatureID == candidatureID {
			return s, nil
		}
	}
	return nil, stage.ErrStageNotFound()
}

func (r *fakeStageRepo) Delete(ctx context.Context, id kernel.StageID) error {
	delete(r.stages, id)
	return nil
}

func (r *fakeStageRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) Exists(ctx context.Context, id kernel.StageID) (bool, error) {
	_, ok := r.stages[id]
	return ok, nil
}

type fakeOrgRepo struct {
	orgs map[kernel.OrganizationID]*organization.Organization
}

func (r *fakeOrgRepo) Create(ctx context.Context, org *organization.Organization) error {
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) Update(ctx context.Context, id kernel.OrganizationID, org *organization.Organization) error {
	r.orgs[id] = org
	return nil
}

func (r *fakeOrgRepo) GetByID(ctx context.Context, id kernel.OrganizationID) (*organization.Organization, error) {
	if org, ok := r.orgs[id]; ok {
		return org, nil
	}
	return nil, organization.ErrOrganizationNotFound()
}

func (r *fakeOrgRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[organization.Organization], error) {
	return &kernel.Paginated[organization.Organization]{}, nil
}

func (r *fakeOrgRepo) Exists(ctx context.Context, id kernel.OrganizationID) (bool, error) {
	_, ok := r.orgs[id]
	return ok, nil
}

type fakeUserRepo struct {
	users map[kernel.UserID]*user.User
}

func (r *fakeUserRepo) Save(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound()
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) FindByOrganization(ctx context.Context, orgID kernel.OrganizationID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	return &kernel.Paginated[user.User]{}, nil
}

type fakeFileSystem struct{ files map[string][]byte }

func (f *fakeFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	f.files[path] = data
	return nil
}

func (f *fakeFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f.files[path], nil
}

func (f *fakeFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.files[path])), nil
}

func (f *fakeFileSystem) DeleteFile(ctx context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeFileSystem) Join(parts ...string) string {
	joined := ""
	for i, p := range parts {
		if i > 0 {
			joined += "/"
		}
		joined += p
	}
	return joined
}

// ----------------------------------------------------------------------------
// Fixtures
// ----------------------------------------------------------------------------

func newTestService(t *testing.T) (*CertificateService, *fakeCertificateRepo) {
	t.Helper()

	orgID := kernel.OrganizationID("org-1")
	score := 8.4
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	validatedAt := end.Add(24 * time.Hour)
	validator := kernel.UserID("hr-1")

	users := &fakeUserRepo{users: map[kernel.UserID]*user.User{
		"intern-1": {
			ID:        "intern-1",
			Email:     "intern@example.com",
			FirstName: "Ada",
			LastName:  "Diallo",
			Role:      user.RoleIntern,
			Status:    user.UserStatusActive,
			Intern:    &user.InternProfile{School: "ENSIAS"},
		},
		"intern-2": {
			ID:        "intern-2",
			Email:     "other@example.com",
			FirstName: "Noa",
			LastName:  "Benali",
			Role:      user.RoleIntern,
			Status:    user.UserStatusActive,
			Intern:    &user.InternProfile{School: "INPT"},
		},
		"hr-1": {
			ID:        "hr-1",
			Email:     "hr@example.com",
			FirstName: "Mina",
			LastName:  "Haddad",
			Role:      user.RoleHRManager,
			Status:    user.UserStatusActive,
			Staff:     &user.StaffProfile{OrganizationID: orgID, Position: "HR Manager"},
		},
	}}

	orgs := &fakeOrgRepo{orgs: map[kernel.OrganizationID]*organization.Organization{
		orgID: {ID: orgID, Name: "Acme Robotics", Sector: "Robotics"},
	}}

	stages := &fakeStageRepo{stages: map[kernel.StageID]*stage.Stage{
		"stage-1": {
			ID:               "stage-1",
			CandidatureID:    "cand-1",
			PostingID:        "post-1",
			OrganizationID:   orgID,
			InternID:         "intern-1",
			SupervisorID:     "hr-1",
			Title:            "Robotics internship",
			Status:           stage.StageStatusCompleted,
			PlannedStartDate: start,
			PlannedEndDate:   end,
			ActualStart:      &start,
			ActualEnd:        &end,
		},
	}}

	evaluations := &fakeEvaluationRepo{evaluations: map[kernel.EvaluationID]*evaluation.Evaluation{
		"eval-1": {
			ID:             "eval-1",
			StageID:        "stage-1",
			EvaluatorID:    "hr-1",
			Status:         evaluation.EvaluationStatusValidated,
			AggregateScore: &score,
			ValidatedAt:    &validatedAt,
			ValidatorID:    &validator,
		},
	}}

	certs := newFakeCertificateRepo()

	svc := NewCertificateService(
		certs,
		evaluations,
		stages,
		orgs,
		users,
		&fakeFileSystem{files: make(map[string][]byte)},
		notify.NoopNotifier{},
		"https://internlink.example.com",
	)
	return svc, certs
}

// ----------------------------------------------------------------------------
// Tests
// ----------------------------------------------------------------------------

func TestIssueCertificateSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1")
	if err != nil {
		t.Fatalf("IssueCertificate: %v", err)
	}

	if cert.Mention != certificate.MentionVeryGood {
		t.Errorf("mention = %s, want VERY_GOOD for 8.4", cert.Mention)
	}
	if cert.FinalScore != 8.4 {
		t.Errorf("final score = %v, want 8.4", cert.FinalScore)
	}
	if cert.InternFullName != "Ada Diallo" {
		t.Errorf("intern name = %q", cert.InternFullName)
	}
	if cert.OrganizationName != "Acme Robotics" || cert.OrganizationSector != "Robotics" {
		t.Errorf("organization snapshot = %q / %q", cert.OrganizationName, cert.OrganizationSector)
	}
	if cert.DurationDays != 180 {
		t.Errorf("duration = %d, want 180", cert.DurationDays)
	}
	if cert.QRPayload == "" {
		t.Error("QR payload not generated")
	}
	if cert.Status != certificate.CertificateStatusGenerated {
		t.Errorf("status = %s, want GENERATED", cert.Status)
	}
}

func TestIssueCertificateIsIdempotent(t *testing.T) {
	svc, certs := newTestService(t)

	first, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1")
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1")
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if first.Code != second.Code {
		t.Errorf("codes differ: %s vs %s", first.Code, second.Code)
	}
	if certs.count() != 1 {
		t.Errorf("stored certificates = %d, want 1", certs.count())
	}
}

func TestIssueRecoversWhenInsertRaceIsLost(t *testing.T) {
	svc, base := newTestService(t)

	winner := &certificate.Certificate{
		ID:            "cert-race",
		Code:          "CERT-2026-W1NN3R00",
		EvaluationID:  "eval-1",
		CandidatureID: "cand-1",
		StageID:       "stage-1",
		InternID:      "intern-1",
		Status:        certificate.CertificateStatusGenerated,
	}
	svc.certificateRepo = &raceCertificateRepo{fakeCertificateRepo: base, winner: winner}

	cert, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1")
	if err != nil {
		t.Fatalf("losing the insert race should return the committed certificate: %v", err)
	}
	if cert.Code != winner.Code {
		t.Errorf("code = %s, want the winner's %s", cert.Code, winner.Code)
	}
	if base.count() != 1 {
		t.Errorf("stored certificates = %d, want 1", base.count())
	}
}

func TestCertificateByEvaluationGatedPerObject(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1"); err != nil {
		t.Fatalf("IssueCertificate: %v", err)
	}

	if _, err := svc.GetCertificateByEvaluation(context.Background(), "eval-1", "intern-2"); err == nil {
		t.Error("an unrelated intern should not read another intern's certificate")
	}
	if _, err := svc.GetCertificateByEvaluation(context.Background(), "eval-1", "intern-1"); err != nil {
		t.Errorf("the certified intern should read their certificate: %v", err)
	}
	if _, err := svc.GetCertificateByEvaluation(context.Background(), "eval-1", "hr-1"); err != nil {
		t.Errorf("the issuing organization should read the certificate: %v", err)
	}
}

func TestIssueRequiresValidatedEvaluation(t *testing.T) {
	svc, _ := newTestService(t)

	draft := &evaluation.Evaluation{
		ID:          "eval-2",
		StageID:     "stage-1",
		EvaluatorID: "hr-1",
		Status:      evaluation.EvaluationStatusCompleted,
	}
	svc.evaluationRepo.(*fakeEvaluationRepo).evaluations["eval-2"] = draft

	if _, err := svc.IssueCertificate(context.Background(), "eval-2", "hr-1"); err == nil {
		t.Error("issuing from a non-validated evaluation should fail")
	}
}

func TestVerifyCountsHitsAndIgnoresMisses(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.IssueCertificate(context.Background(), "eval-1", "hr-1")
	if err != nil {
		t.Fatalf("IssueCertificate: %v", err)
	}

	view, err := svc.VerifyCertificate(context.Background(), cert.Code)
	if err != nil {
		t.Fatalf("VerifyCertificate: %v", err)
	}
	if view.VerificationCount != 1 {
		t.Errorf("verification count = %d, want 1", view.VerificationCount)
	}

	again, err := svc.VerifyCertificate(context.Background(), cert.Code)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if again.VerificationCount != 2 {
		t.Errorf("verification count = %d, want 2", again.VerificationCount)
	}

	if _, err := svc.VerifyCertificate(context.Background(), "CERT-2026-NOPENOPE"); err == nil {
		t.Error("verifying an unknown code should be a negative result")
	}

	// A failed lookup never bumps anyone's counter
	final, _ := svc.VerifyCertificate(context.Background(), cert.Code)
	if final.VerificationCount != 3 {
		t.Errorf("verification count = %d, want 3", final.VerificationCount)
	}
}
