package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestFeedService_List(t *testing.T) {
	page := []models.Post{
		{ID: 2, Username: "bob", CreatedAt: 200, TextContent: "second"},
		{ID: 1, Username: "alice", CreatedAt: 100, TextContent: "first"},
	}

	tests := []struct {
		name       string
		page       int
		wantOffset int
		stored     []models.Post
		storeErr   error
		want       []models.Post
		wantErr    error
	}{
		{name: "first page", page: 0, wantOffset: 0, stored: page, want: page},
		{name: "second page overlaps", page: 1, wantOffset: 10, stored: page, want: page},
		{name: "third page", page: 2, wantOffset: 20, stored: page, want: page},
		{name: "negative page clamps to zero", page: -3, wantOffset: 0, stored: page, want: page},
		{name: "past the end is empty", page: 50, wantOffset: 500, stored: nil, want: []models.Post{}},
		{name: "store failure", page: 0, wantOffset: 0, storeErr: errors.New("conn reset"), wantErr: services.ErrStoreFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockPostReader(ctrl)
			reader.EXPECT().List(gomock.Any(), services.FeedPageSize, tt.wantOffset).Return(tt.stored, tt.storeErr)

			got, err := services.NewFeedService(reader).List(context.Background(), tt.page)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeedService_List_OffsetOverflow(t *testing.T) {
	for _, page := range []int{math.MaxInt/services.FeedPageStep + 1, math.MaxInt / 5, math.MaxInt} {
		ctrl := gomock.NewController(t)

		// the store must not be queried with a wrapped offset
		reader := services.NewMockPostReader(ctrl)

		got, err := services.NewFeedService(reader).List(context.Background(), page)
		assert.NoError(t, err)
		assert.Equal(t, []models.Post{}, got)
		ctrl.Finish()
	}
}

func TestFeedService_List_LargestPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	page := math.MaxInt / services.FeedPageStep
	reader := services.NewMockPostReader(ctrl)
	reader.EXPECT().List(gomock.Any(), services.FeedPageSize, page*services.FeedPageStep).Return(nil, nil)

	got, err := services.NewFeedService(reader).List(context.Background(), page)
	assert.NoError(t, err)
	assert.Equal(t, []models.Post{}, got)
}
