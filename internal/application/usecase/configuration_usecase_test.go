package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relocation/internal/application/dto"
	"github.com/jhoicas/stock-relocation/internal/application/usecase"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

type configRepoMock struct{ mock.Mock }

func (m *configRepoMock) Get(ctx context.Context) (*entity.StockConfiguration, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*entity.StockConfiguration)
	return cfg, args.Error(1)
}

func (m *configRepoMock) Save(ctx context.Context, cfg *entity.StockConfiguration) error {
	return m.Called(ctx, cfg).Error(0)
}

type locationRepoMock struct{ mock.Mock }

func (m *locationRepoMock) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.Location)
	return l, args.Error(1)
}

func (m *locationRepoMock) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Location, error) {
	args := m.Called(ctx, ids)
	l, _ := args.Get(0).(map[string]*entity.Location)
	return l, args.Error(1)
}

func (m *locationRepoMock) ListByType(ctx context.Context, locType string) ([]*entity.Location, error) {
	args := m.Called(ctx, locType)
	l, _ := args.Get(0).([]*entity.Location)
	return l, args.Error(1)
}

func TestConfigurationGet(t *testing.T) {
	repo := &configRepoMock{}
	repo.On("Get", mock.Anything).Return(&entity.StockConfiguration{ToRelocationLocationID: "B"}, nil).Once()
	repo.On("Get", mock.Anything).Return(nil, nil).Once()
	uc := usecase.NewConfigurationUseCase(repo, &locationRepoMock{})

	out, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B", out.ToRelocationLocationID)

	out, err = uc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.ToRelocationLocationID)
}

func TestConfigurationSave_UbicacionDeAlmacenamiento(t *testing.T) {
	repo := &configRepoMock{}
	locs := &locationRepoMock{}
	locs.On("GetByID", mock.Anything, "B").Return(&entity.Location{ID: "B", Type: entity.LocationTypeStorage}, nil)
	repo.On("Save", mock.Anything, &entity.StockConfiguration{ToRelocationLocationID: "B"}).Return(nil).Once()

	out, err := usecase.NewConfigurationUseCase(repo, locs).Save(context.Background(), dto.StockConfigurationDTO{ToRelocationLocationID: "B"})

	require.NoError(t, err)
	assert.Equal(t, "B", out.ToRelocationLocationID)
	repo.AssertExpectations(t)
}

func TestConfigurationSave_VacioQuitaElDestino(t *testing.T) {
	repo := &configRepoMock{}
	locs := &locationRepoMock{}
	repo.On("Save", mock.Anything, &entity.StockConfiguration{}).Return(nil).Once()

	_, err := usecase.NewConfigurationUseCase(repo, locs).Save(context.Background(), dto.StockConfigurationDTO{})

	require.NoError(t, err)
	locs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestConfigurationSave_Rechazos(t *testing.T) {
	cases := map[string]struct {
		loc  *entity.Location
		want error
	}{
		"inexistente": {nil, domain.ErrNotFound},
		"bodega":      {&entity.Location{ID: "X", Type: entity.LocationTypeWarehouse}, domain.ErrInvalidLocation},
		"vista":       {&entity.Location{ID: "X", Type: entity.LocationTypeView}, domain.ErrInvalidLocation},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &configRepoMock{}
			locs := &locationRepoMock{}
			locs.On("GetByID", mock.Anything, "X").Return(tc.loc, nil)

			_, err := usecase.NewConfigurationUseCase(repo, locs).Save(context.Background(), dto.StockConfigurationDTO{ToRelocationLocationID: "X"})

			assert.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestConfigurationSave_PropagaErrorDelRepo(t *testing.T) {
	boom := errors.New("db caída")
	repo := &configRepoMock{}
	repo.On("Save", mock.Anything, mock.Anything).Return(boom)

	_, err := usecase.NewConfigurationUseCase(repo, &locationRepoMock{}).Save(context.Background(), dto.StockConfigurationDTO{})
	assert.ErrorIs(t, err, boom)
}
