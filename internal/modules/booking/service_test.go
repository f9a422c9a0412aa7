package booking

import (
	"context"
	"errors"
	"testing"

	"petcare/internal/domain"
	"petcare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	if reg != nil {
		reg.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRegistrationRepository) CreateSlotGuarded(ctx context.Context, reg *domain.Registration, capacity int) error {
	args := m.Called(ctx, reg, capacity)
	if reg != nil && args.Error(0) == nil {
		reg.ID = 999
	}
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Registration, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) CountBySlot(ctx context.Context, slotKey string) (int64, error) {
	args := m.Called(ctx, slotKey)
	return args.Get(0).(int64), args.Error(1)
}

type MockPetReader struct {
	mock.Mock
}

func (m *MockPetReader) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) GetByID(ctx context.Context, id int64) (*domain.CareItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CareItem), args.Error(1)
}

func (m *MockCatalogReader) ListActive(ctx context.Context) ([]domain.CareItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CareItem), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) RegistrationCreated(ctx context.Context, reg *domain.Registration, itemName string) error {
	args := m.Called(ctx, reg, itemName)
	return args.Error(0)
}

func newMocks() (*MockRegistrationRepository, *MockPetReader, *MockCatalogReader, *MockNotificationSender) {
	return new(MockRegistrationRepository), new(MockPetReader), new(MockCatalogReader), new(MockNotificationSender)
}

func TestService_CreateRegistration_Appointment(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(1)).Return(&domain.CareItem{
		ID: 1, Kind: domain.KindAppointment, Name: "General checkup", Price: 300000, Active: true,
	}, nil)
	regs.On("CreateSlotGuarded", mock.Anything, mock.Anything, AppointmentSlotCapacity).Return(nil)
	notifs.On("RegistrationCreated", mock.Anything, mock.Anything, "General checkup").Return(nil)

	service := NewService(regs, pets, items, notifs, nil)

	reg, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 1, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-05-01T08:30", reg.SlotKey)
	assert.Equal(t, int64(300000), reg.Price)
	assert.Equal(t, domain.ActivityScheduled, reg.ActivityStatus)
	assert.Equal(t, domain.PaymentPending, reg.PaymentStatus)
	regs.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestService_CreateRegistration_SlotFull(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(1)).Return(&domain.CareItem{
		ID: 1, Kind: domain.KindAppointment, Name: "General checkup", Price: 300000, Active: true,
	}, nil)
	regs.On("CreateSlotGuarded", mock.Anything, mock.Anything, AppointmentSlotCapacity).
		Return(repository.ErrSlotCapacity)

	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 1, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.ErrorIs(t, err, ErrSlotFull)
	notifs.AssertNotCalled(t, "RegistrationCreated", mock.Anything, mock.Anything, mock.Anything)
}

// A bad time label must fail before any record lookup or capacity work.
func TestService_CreateRegistration_InvalidLabelRejectedFirst(t *testing.T) {
	regs, pets, items, notifs := newMocks()
	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 1, Kind: "appointment", Date: "2026-05-01", Time: "08:15",
	})

	assert.ErrorIs(t, err, ErrValidation)
	pets.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	regs.AssertNotCalled(t, "CreateSlotGuarded", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateRegistration_PetOfAnotherOwner(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 42}, nil)

	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 1, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	items.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_CreateRegistration_KindMismatch(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(5)).Return(&domain.CareItem{
		ID: 5, Kind: domain.KindService, Name: "Full grooming", Price: 400000, Active: true,
	}, nil)

	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 5, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateRegistration_InactiveItem(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(9)).Return(&domain.CareItem{
		ID: 9, Kind: domain.KindAppointment, Name: "Retired", Price: 100000, Active: false,
	}, nil)

	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 9, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

// Boarding has no capacity limit and records the stay interval.
func TestService_CreateRegistration_Boarding(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(6)).Return(&domain.CareItem{
		ID: 6, Kind: domain.KindBoarding, Name: "Standard boarding", Price: 350000, Active: true,
	}, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("RegistrationCreated", mock.Anything, mock.Anything, "Standard boarding").Return(nil)

	service := NewService(regs, pets, items, notifs, nil)

	reg, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 6, Kind: "boarding", Date: "2026-05-01", EndDate: "2026-05-04",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-05-01T00:00", reg.SlotKey)
	if assert.NotNil(t, reg.EndDate) {
		assert.Equal(t, "2026-05-04", reg.EndDate.Format("2006-01-02"))
	}
	regs.AssertNotCalled(t, "CreateSlotGuarded", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateRegistration_BoardingEndBeforeStart(t *testing.T) {
	regs, pets, items, notifs := newMocks()
	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 6, Kind: "boarding", Date: "2026-05-04", EndDate: "2026-05-01",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

// Delivery failures are logged, never returned to the caller.
func TestService_CreateRegistration_NotificationFailureIgnored(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	pets.On("GetByID", mock.Anything, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 7}, nil)
	items.On("GetByID", mock.Anything, int64(1)).Return(&domain.CareItem{
		ID: 1, Kind: domain.KindAppointment, Name: "General checkup", Price: 300000, Active: true,
	}, nil)
	regs.On("CreateSlotGuarded", mock.Anything, mock.Anything, AppointmentSlotCapacity).Return(nil)
	notifs.On("RegistrationCreated", mock.Anything, mock.Anything, "General checkup").
		Return(errors.New("broker down"))

	service := NewService(regs, pets, items, notifs, nil)

	reg, err := service.CreateRegistration(context.Background(), 7, CreateRegistrationRequest{
		PetID: 3, ItemID: 1, Kind: "appointment", Date: "2026-05-01", Time: "08:30",
	})

	assert.NoError(t, err)
	assert.NotNil(t, reg)
}

func TestService_SlotAvailability(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	for _, label := range appointmentLabels {
		var cnt int64
		if label == "08:30" {
			cnt = 2
		}
		regs.On("CountBySlot", mock.Anything, "2026-05-01T"+label).Return(cnt, nil)
	}

	service := NewService(regs, pets, items, notifs, nil)

	slots, err := service.SlotAvailability(context.Background(), "2026-05-01")

	assert.NoError(t, err)
	assert.Len(t, slots, len(appointmentLabels))
	for _, s := range slots {
		if s.Label == "08:30" {
			assert.Equal(t, 2, s.Booked)
			assert.False(t, s.Available)
		} else {
			assert.Equal(t, 0, s.Booked)
			assert.True(t, s.Available)
		}
	}
}

func TestService_SlotAvailability_BadDate(t *testing.T) {
	regs, pets, items, notifs := newMocks()
	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.SlotAvailability(context.Background(), "01-05-2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_GetOwnedRegistration_WrongOwner(t *testing.T) {
	regs, pets, items, notifs := newMocks()

	regs.On("GetByID", mock.Anything, int64(11)).Return(&domain.Registration{ID: 11, OwnerID: 42}, nil)

	service := NewService(regs, pets, items, notifs, nil)

	_, err := service.GetOwnedRegistration(context.Background(), 11, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
