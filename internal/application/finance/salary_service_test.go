package finance

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSalaryService_Create(t *testing.T) {
	userID := uuid.New()
	repo := new(MockSalaryRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Salary")).Return(nil)
	svc := NewSalaryService(repo, new(MockCertificateRepository))

	t.Run("recurring template has no received date", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), userID, CreateSalaryRequest{
			Company:      "Acme",
			Amount:       decPtr(5000),
			IsRecurring:  true,
			DayOfMonth:   intPtr(25),
			ReceivedDate: &common.Date{Time: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.ReceivedDate)
		assert.Equal(t, 25, *resp.DayOfMonth)
	})

	t.Run("one-off salary needs a received date", func(t *testing.T) {
		_, err := svc.Create(context.Background(), userID, CreateSalaryRequest{Company: "Acme", Amount: decPtr(5000)})
		assert.Error(t, err)
	})
}

func TestSalaryService_Create_CertificateLink(t *testing.T) {
	userID := uuid.New()
	own, err := certificate.NewCertificate(userID, certificate.CertificateDetails{BankName: "NBE", CertificateName: "Platinum", Amount: dec(100000)})
	require.NoError(t, err)
	foreign, err := certificate.NewCertificate(uuid.New(), certificate.CertificateDetails{BankName: "CIB", CertificateName: "Gold", Amount: dec(100000)})
	require.NoError(t, err)

	certRepo := new(MockCertificateRepository)
	certRepo.On("FindByID", mock.Anything, own.ID).Return(own, nil)
	certRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)
	repo := new(MockSalaryRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc := NewSalaryService(repo, certRepo)

	received := &common.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	resp, err := svc.Create(context.Background(), userID, CreateSalaryRequest{Company: "NBE return", Amount: decPtr(1500), ReceivedDate: received, CertificateID: &own.ID})
	require.NoError(t, err)
	assert.Equal(t, own.ID, *resp.CertificateID)

	_, err = svc.Create(context.Background(), userID, CreateSalaryRequest{Company: "CIB return", Amount: decPtr(1500), ReceivedDate: received, CertificateID: &foreign.ID})
	assert.ErrorIs(t, err, ErrInvalidCertificate)
}

func TestSalaryService_UpdateAndDelete(t *testing.T) {
	owner := uuid.New()
	received := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	salary, err := finance.NewSalary(owner, finance.SalaryDetails{Company: "Acme", Amount: dec(5000), ReceivedDate: &received})
	require.NoError(t, err)
	salary.ClearDomainEvents()

	repo := new(MockSalaryRepository)
	repo.On("FindByID", mock.Anything, salary.ID).Return(salary, nil)
	repo.On("Save", mock.Anything, salary).Return(nil)
	repo.On("Delete", mock.Anything, salary.ID).Return(nil)
	pub := testutil.NewEventRecorder()
	svc := NewSalaryService(repo, new(MockCertificateRepository))
	svc.SetEventPublisher(pub)

	notes := "bonus included"
	resp, err := svc.Update(context.Background(), owner, salary.ID, UpdateSalaryRequest{Amount: decPtr(6000), Notes: &notes})
	require.NoError(t, err)
	assert.True(t, dec(6000).Equal(resp.Amount))
	assert.Equal(t, "Acme", resp.Company)
	assert.Equal(t, notes, resp.Notes)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), salary.ID), shared.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), owner, salary.ID))
	assert.Equal(t, []string{"salary.updated", "salary.deleted"}, pub.Types())
}
