package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgair_backend/internal/feature/assessments/domain"
	"orgair_backend/internal/feature/assessments/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// fakeAssessmentRepo is an in-memory AssessmentRepository.
type fakeAssessmentRepo struct {
	byID         map[uuid.UUID]*entity.Assessment
	approveSwaps int
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{byID: make(map[uuid.UUID]*entity.Assessment)}
}

func (f *fakeAssessmentRepo) Insert(ctx context.Context, a *entity.Assessment) error {
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAssessmentRepo) Update(ctx context.Context, a *entity.Assessment) error {
	stored, ok := f.byID[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	scores := stored.Scores
	cp := *a
	cp.Scores = scores
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAssessmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assessment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	cp.Scores = append([]entity.DimensionScore(nil), a.Scores...)
	return &cp, nil
}

func (f *fakeAssessmentRepo) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Assessment, int64, error) {
	var out []entity.Assessment
	for _, a := range f.byID {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssessmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.ErrConflict
}

func (f *fakeAssessmentRepo) UpsertScore(ctx context.Context, score *entity.DimensionScore) error {
	a, ok := f.byID[score.AssessmentID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, s := range a.Scores {
		if s.Dimension == score.Dimension {
			a.Scores[i] = *score
			return nil
		}
	}
	a.Scores = append(a.Scores, *score)
	return nil
}

func (f *fakeAssessmentRepo) ApproveSwap(ctx context.Context, companyID, assessmentID uuid.UUID) error {
	f.approveSwaps++
	target, ok := f.byID[assessmentID]
	if !ok || target.CompanyID != companyID || target.Status != entity.StatusSubmitted {
		return repository.ErrConflict
	}
	for _, a := range f.byID {
		if a.CompanyID == companyID && a.Status == entity.StatusApproved && a.ID != assessmentID {
			a.Status = entity.StatusSuperseded
		}
	}
	target.Status = entity.StatusApproved
	return nil
}

// fakeDirectory resolves companies to a single industry.
type fakeDirectory struct {
	companyID  uuid.UUID
	industryID uuid.UUID
}

func (f *fakeDirectory) IndustryOf(ctx context.Context, companyID uuid.UUID) (uuid.UUID, error) {
	if companyID != f.companyID {
		return uuid.Nil, repository.ErrNotFound
	}
	return f.industryID, nil
}

// fakeWeights serves one weight profile for one industry.
type fakeWeights struct {
	industryID uuid.UUID
	profile    map[string]float64
}

func (f *fakeWeights) Weights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error) {
	if industryID != f.industryID {
		return nil, repository.ErrNotFound
	}
	return f.profile, nil
}

// testProfile sums to exactly 1.0 across all seven dimensions.
func testProfile() map[string]float64 {
	return map[string]float64{
		"strategy":   0.16,
		"data":       0.14,
		"technology": 0.14,
		"talent":     0.14,
		"governance": 0.14,
		"operations": 0.14,
		"culture":    0.14,
	}
}

type fixture struct {
	uc        *assessmentUsecase
	repo      *fakeAssessmentRepo
	companyID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	companyID := uuid.New()
	industryID := uuid.New()
	repo := newFakeAssessmentRepo()
	uc := NewAssessmentUsecase(repo,
		&fakeDirectory{companyID: companyID, industryID: industryID},
		&fakeWeights{industryID: industryID, profile: testProfile()},
	)
	return &fixture{uc: uc, repo: repo, companyID: companyID}
}

// fillScores records a full valid score set on an assessment.
func fillScores(t *testing.T, fx *fixture, id uuid.UUID) {
	t.Helper()

	for dim := range testProfile() {
		_, err := fx.uc.AddDimensionScore(context.Background(), id, entity.Dimension(dim), 70, 0.9, nil)
		require.NoError(t, err)
	}
}

func TestCreateAssessment(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeScreening)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, a.Status)
	assert.Equal(t, fx.companyID, a.CompanyID)
	assert.Nil(t, a.OverallScore)
}

func TestCreateAssessment_UnknownType(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.AssessmentType("audit"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateAssessment_UnknownCompany(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := fx.uc.CreateAssessment(context.Background(), uuid.New(), entity.TypeScreening)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddDimensionScore_DefaultsToProfileWeight(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)

	got, err := fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionStrategy, 80, 0.9, nil)
	require.NoError(t, err)
	require.Len(t, got.Scores, 1)
	assert.InDelta(t, 0.16, got.Scores[0].Weight, 1e-9)
	assert.False(t, got.WeightsOverridden)
}

func TestAddDimensionScore_ExplicitOverrideMarksAssessment(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)

	w := 0.5
	got, err := fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionData, 60, 0.8, &w)
	require.NoError(t, err)
	assert.True(t, got.WeightsOverridden)
	require.Len(t, got.Scores, 1)
	assert.InDelta(t, 0.5, got.Scores[0].Weight, 1e-9)
}

func TestAddDimensionScore_ExplicitProfileWeightIsNotOverride(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)

	w := 0.14
	got, err := fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionData, 60, 0.8, &w)
	require.NoError(t, err)
	assert.False(t, got.WeightsOverridden)
}

func TestAddDimensionScore_ReplacesExisting(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)

	_, err = fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionTalent, 40, 0.5, nil)
	require.NoError(t, err)
	got, err := fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionTalent, 75, 0.9, nil)
	require.NoError(t, err)

	require.Len(t, got.Scores, 1)
	assert.InDelta(t, 75.0, got.Scores[0].Score, 1e-9)
}

func TestAddDimensionScore_LockedAfterSubmit(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)
	fillScores(t, fx, a.ID)

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
	require.NoError(t, err)
	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
	require.NoError(t, err)

	_, err = fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionData, 10, 0.1, nil)
	assert.ErrorIs(t, err, domain.ErrAssessmentLocked)
}

func TestAddDimensionScore_InvalidFields(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
	require.NoError(t, err)

	_, err = fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionData, 101, 0.5, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTransitionStatus_SameStatusIsNoOp(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeScreening)
	require.NoError(t, err)

	got, err := fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Status)
}

func TestTransitionStatus_IllegalEdge(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeScreening)
	require.NoError(t, err)

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusApproved)
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, entity.StatusDraft, terr.From)
	assert.Equal(t, entity.StatusApproved, terr.To)
}

func TestTransitionStatus_SubmitComputesOverallScore(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeDueDiligence)
	require.NoError(t, err)
	fillScores(t, fx, a.ID)

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
	require.NoError(t, err)
	got, err := fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSubmitted, got.Status)
	require.NotNil(t, got.OverallScore)
	// All dimensions at 70 with weights summing to 1.0.
	assert.InDelta(t, 70.0, *got.OverallScore, 1e-9)
}

func TestTransitionStatus_SubmitRejectsIncompleteSet(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeDueDiligence)
	require.NoError(t, err)

	_, err = fx.uc.AddDimensionScore(context.Background(), a.ID, entity.DimensionData, 70, 0.9, nil)
	require.NoError(t, err)
	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
	require.NoError(t, err)

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	// The assessment stays where it was and keeps no derived score.
	got, err := fx.uc.GetAssessment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)
	assert.Nil(t, got.OverallScore)
}

func TestTransitionStatus_SubmitRejectsDivergedWeightsWithoutOverride(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeDueDiligence)
	require.NoError(t, err)
	fillScores(t, fx, a.ID)

	// Force divergence behind the usecase's back so the override flag
	// stays false.
	stored := fx.repo.byID[a.ID]
	for i := range stored.Scores {
		if stored.Scores[i].Dimension == entity.DimensionStrategy {
			stored.Scores[i].Weight = 0.14
		}
		if stored.Scores[i].Dimension == entity.DimensionData {
			stored.Scores[i].Weight = 0.16
		}
	}

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
	require.NoError(t, err)
	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "diverge")
}

func TestTransitionStatus_SubmitAcceptsOverriddenWeights(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeDueDiligence)
	require.NoError(t, err)

	// Explicit weights that still sum to 1.0 but diverge from the
	// profile.
	weights := map[entity.Dimension]float64{
		entity.DimensionStrategy:   0.4,
		entity.DimensionData:       0.1,
		entity.DimensionTechnology: 0.1,
		entity.DimensionTalent:     0.1,
		entity.DimensionGovernance: 0.1,
		entity.DimensionOperations: 0.1,
		entity.DimensionCulture:    0.1,
	}
	for dim, w := range weights {
		w := w
		_, err := fx.uc.AddDimensionScore(context.Background(), a.ID, dim, 50, 0.9, &w)
		require.NoError(t, err)
	}

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
	require.NoError(t, err)
	got, err := fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
	require.NoError(t, err)

	assert.True(t, got.WeightsOverridden)
	require.NotNil(t, got.OverallScore)
	assert.InDelta(t, 50.0, *got.OverallScore, 1e-9)
}

func TestTransitionStatus_ApproveGoesThroughSwap(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	submit := func() uuid.UUID {
		a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeQuarterly)
		require.NoError(t, err)
		fillScores(t, fx, a.ID)
		_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusInProgress)
		require.NoError(t, err)
		_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.StatusSubmitted)
		require.NoError(t, err)
		return a.ID
	}

	first := submit()
	got, err := fx.uc.TransitionStatus(context.Background(), first, entity.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, got.Status)
	assert.Equal(t, 1, fx.repo.approveSwaps)

	// Approving a second assessment supersedes the first.
	second := submit()
	_, err = fx.uc.TransitionStatus(context.Background(), second, entity.StatusApproved)
	require.NoError(t, err)

	prev, err := fx.uc.GetAssessment(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuperseded, prev.Status)
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	a, err := fx.uc.CreateAssessment(context.Background(), fx.companyID, entity.TypeScreening)
	require.NoError(t, err)

	_, err = fx.uc.TransitionStatus(context.Background(), a.ID, entity.Status("archived"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
