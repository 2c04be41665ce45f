package registry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockVillageRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Village, error)
	ListFunc    func(ctx context.Context) ([]domain.Village, error)
	CreateFunc  func(ctx context.Context, v domain.Village) (*domain.Village, error)
	UpdateFunc  func(ctx context.Context, v domain.Village) (*domain.Village, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockVillageRepo) GetByID(ctx context.Context, id int64) (*domain.Village, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockVillageRepo) List(ctx context.Context) ([]domain.Village, error) {
	return m.ListFunc(ctx)
}

func (m *mockVillageRepo) Create(ctx context.Context, v domain.Village) (*domain.Village, error) {
	return m.CreateFunc(ctx, v)
}

func (m *mockVillageRepo) Update(ctx context.Context, v domain.Village) (*domain.Village, error) {
	return m.UpdateFunc(ctx, v)
}

func (m *mockVillageRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockSpeakerRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Speaker, error)
	ListFunc    func(ctx context.Context) ([]domain.Speaker, error)
	CreateFunc  func(ctx context.Context, s domain.Speaker) (*domain.Speaker, error)
	UpdateFunc  func(ctx context.Context, s domain.Speaker) (*domain.Speaker, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockSpeakerRepo) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockSpeakerRepo) List(ctx context.Context) ([]domain.Speaker, error) {
	return m.ListFunc(ctx)
}

func (m *mockSpeakerRepo) Create(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
	return m.CreateFunc(ctx, s)
}

func (m *mockSpeakerRepo) Update(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
	return m.UpdateFunc(ctx, s)
}

func (m *mockSpeakerRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockTypeRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error)
	ListFunc    func(ctx context.Context) ([]domain.OnomatopoeiaType, error)
	CreateFunc  func(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error)
	UpdateFunc  func(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockTypeRepo) GetByID(ctx context.Context, id int64) (*domain.OnomatopoeiaType, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTypeRepo) List(ctx context.Context) ([]domain.OnomatopoeiaType, error) {
	return m.ListFunc(ctx)
}

func (m *mockTypeRepo) Create(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
	return m.CreateFunc(ctx, t)
}

func (m *mockTypeRepo) Update(ctx context.Context, t domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
	return m.UpdateFunc(ctx, t)
}

func (m *mockTypeRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func newTestService(v *mockVillageRepo, s *mockSpeakerRepo, ty *mockTypeRepo) *Service {
	if v == nil {
		v = &mockVillageRepo{}
	}
	if s == nil {
		s = &mockSpeakerRepo{}
	}
	if ty == nil {
		ty = &mockTypeRepo{}
	}
	return NewService(slog.Default(), v, s, ty)
}

// ---------------------------------------------------------------------------
// Villages
// ---------------------------------------------------------------------------

func TestCreateVillage_TrimsAndStores(t *testing.T) {
	t.Parallel()

	repo := &mockVillageRepo{CreateFunc: func(ctx context.Context, v domain.Village) (*domain.Village, error) {
		if v.Name != "湾" || v.Latitude != 28.32 {
			t.Errorf("village: got %+v", v)
		}
		v.ID = 9
		return &v, nil
	}}

	got, err := newTestService(repo, nil, nil).CreateVillage(context.Background(), VillageInput{
		Name: " 湾 ", Latitude: ptrFloat(28.32), Longitude: ptrFloat(129.93),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 9 {
		t.Errorf("id: got %d, want 9", got.ID)
	}
}

func TestCreateVillage_ValidationSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &mockVillageRepo{CreateFunc: func(ctx context.Context, v domain.Village) (*domain.Village, error) {
		t.Error("Create should not be called")
		return nil, nil
	}}

	_, err := newTestService(repo, nil, nil).CreateVillage(context.Background(), VillageInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error: got %v, want ErrValidation", err)
	}
}

func TestUpdateVillage_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockVillageRepo{UpdateFunc: func(ctx context.Context, v domain.Village) (*domain.Village, error) {
		if v.ID != 5 {
			t.Errorf("id: got %d, want 5", v.ID)
		}
		return nil, domain.ErrNotFound
	}}

	_, err := newTestService(repo, nil, nil).UpdateVillage(context.Background(), 5, VillageInput{
		Name: "湾", Latitude: ptrFloat(28.32), Longitude: ptrFloat(129.93),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Speakers
// ---------------------------------------------------------------------------

func TestCreateSpeaker_UnknownVillage(t *testing.T) {
	t.Parallel()

	villages := &mockVillageRepo{GetByIDFunc: func(ctx context.Context, id int64) (*domain.Village, error) {
		return nil, domain.ErrNotFound
	}}
	speakers := &mockSpeakerRepo{CreateFunc: func(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
		t.Error("Create should not be called")
		return nil, nil
	}}

	vid := int64(77)
	_, err := newTestService(villages, speakers, nil).CreateSpeaker(context.Background(), SpeakerInput{
		SpeakerID: "KK-001", AgeRange: "70-79", Gender: "F", VillageID: &vid,
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Field != "village_id" {
		t.Fatalf("error: got %v, want village_id validation error", err)
	}
}

func TestCreateSpeaker_WithoutVillage(t *testing.T) {
	t.Parallel()

	speakers := &mockSpeakerRepo{CreateFunc: func(ctx context.Context, s domain.Speaker) (*domain.Speaker, error) {
		if s.VillageID != nil || s.Gender != domain.GenderMale {
			t.Errorf("speaker: got %+v", s)
		}
		s.ID = 1
		return &s, nil
	}}

	got, err := newTestService(nil, speakers, nil).CreateSpeaker(context.Background(), SpeakerInput{
		SpeakerID: "KK-002", AgeRange: "80-89", Gender: "M",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("id: got %d", got.ID)
	}
}

func TestDeleteSpeaker_ProtectedByRecords(t *testing.T) {
	t.Parallel()

	speakers := &mockSpeakerRepo{DeleteFunc: func(ctx context.Context, id int64) error {
		return domain.ErrConflict
	}}

	err := newTestService(nil, speakers, nil).DeleteSpeaker(context.Background(), 3)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error: got %v, want ErrConflict", err)
	}
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func TestCreateType_Duplicate(t *testing.T) {
	t.Parallel()

	types := &mockTypeRepo{CreateFunc: func(ctx context.Context, ty domain.OnomatopoeiaType) (*domain.OnomatopoeiaType, error) {
		return nil, domain.ErrAlreadyExists
	}}

	_, err := newTestService(nil, nil, types).CreateType(context.Background(), TypeInput{TypeCode: "giongo", TypeName: "擬音語"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("error: got %v, want ErrAlreadyExists", err)
	}
}

func TestDeleteType_Success(t *testing.T) {
	t.Parallel()

	var deleted int64
	types := &mockTypeRepo{DeleteFunc: func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}}

	if err := newTestService(nil, nil, types).DeleteType(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted: got %d, want 4", deleted)
	}
}
