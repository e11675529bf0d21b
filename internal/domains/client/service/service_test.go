package service_test

import (
	"context"
	"errors"
	"testing"

	"studio/infras/otel/mocks"
	clientMocks "studio/internal/domains/client/mocks"
	"studio/internal/domains/client/model"
	"studio/internal/domains/client/model/dto"
	"studio/internal/domains/client/service"
	gDto "studio/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(v string) *string { return &v }

func whereOf(filter gDto.FilterGroup) string {
	where, _ := filter.GetWhereClause()

	return where
}

func TestClientService_ResolveTxByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := clientMocks.NewMockClient(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	existing := model.Client{ID: "client-1", UserID: strPtr("user-1"), Name: "Ana"}

	mockRepo.EXPECT().InsertBulkIgnoreConflictTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, models []model.Client) (int64, error) {
			require.Len(t, models, 1)
			require.NotNil(t, models[0].UserID)
			assert.Equal(t, "user-1", *models[0].UserID)

			return 0, nil
		})
	mockRepo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, filter gDto.FilterGroup, _ ...string) (model.Client, error) {
			assert.Equal(t, "(user_id = :user_id)", whereOf(filter))

			return existing, nil
		})

	res, err := svc.ResolveTx(context.Background(), nil, dto.ResolveRequest{UserID: "user-1", Name: "Ana"})

	require.NoError(t, err)
	assert.Equal(t, "client-1", res.ID)
}

func TestClientService_ResolveTxByPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := clientMocks.NewMockClient(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().InsertBulkIgnoreConflictTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, models []model.Client) (int64, error) {
			assert.Nil(t, models[0].UserID)
			assert.Equal(t, "Walk In", models[0].Name)

			return 1, nil
		})
	mockRepo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, filter gDto.FilterGroup, _ ...string) (model.Client, error) {
			assert.Equal(t, "(phone = :phone)", whereOf(filter))

			return model.Client{ID: "client-2", Phone: strPtr("+34600000000")}, nil
		})

	res, err := svc.ResolveTx(context.Background(), nil, dto.ResolveRequest{
		UserID:  "admin-1",
		Name:    " Walk In ",
		Phone:   "+34600000000",
		ByPhone: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "client-2", res.ID)
}

func TestClientService_ResolveTxPhoneTakenByWalkIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := clientMocks.NewMockClient(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	gomock.InOrder(
		mockRepo.EXPECT().InsertBulkIgnoreConflictTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(int64(0), nil),
		mockRepo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Client{}, nil),
		mockRepo.EXPECT().InsertBulkIgnoreConflictTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, models []model.Client) (int64, error) {
				assert.Nil(t, models[0].Phone)

				return 1, nil
			}),
		mockRepo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Client{ID: "client-3"}, nil),
	)

	res, err := svc.ResolveTx(context.Background(), nil, dto.ResolveRequest{UserID: "user-3", Name: "Luis", Phone: "+34611111111"})

	require.NoError(t, err)
	assert.Equal(t, "client-3", res.ID)
}

func TestClientService_ResolveTxWithoutIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(clientMocks.NewMockClient(ctrl), mocks.NewOtel())

	_, err := svc.ResolveTx(context.Background(), nil, dto.ResolveRequest{Name: "Nobody", ByPhone: true})

	assert.ErrorIs(t, err, service.ErrClientIdentity)
}

func TestClientService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := clientMocks.NewMockClient(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{}, nil)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrClientNotFound)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{}, errors.New("database error"))
	_, err = svc.FindByUserID(context.Background(), "user-1")
	assert.Error(t, err)
}
