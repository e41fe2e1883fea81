package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/leadintake/pkg/db/models"
	"github.com/angelmondragon/leadintake/pkg/enums"
)

func TestRepositoryInsertAssignsIncreasingIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Insert(ctx, &models.Lead{Source: enums.LeadSourceWeb, Name: "Ada", Email: "a@x.io", Message: "first message"})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, &models.Lead{Source: enums.LeadSourceWeb, Name: "Bob", Email: "b@x.io", Message: "second message"})
	require.NoError(t, err)

	assert.Greater(t, first, int64(0))
	assert.Greater(t, second, first)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRepositoryInsertRejectsPresetID(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Insert(context.Background(), &models.Lead{ID: 7, Source: enums.LeadSourceWeb, Name: "Ada"})
	assert.Error(t, err)
}

func TestRepositoryListRecentNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := repo.Insert(ctx, &models.Lead{Source: enums.LeadSourceWeb, Name: name, Message: "message body"})
		require.NoError(t, err)
	}

	rows, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "three", rows[0].Name)
	assert.Equal(t, "two", rows[1].Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[2].Name)

	none, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositorySessionUniqueness(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	paidAt := time.Now().UTC()
	sid := "cs_test_abcdef123456"

	lead := &models.Lead{
		Source:          enums.LeadSourceWebPaid,
		Name:            "Ada",
		Email:           "a@x.io",
		Message:         "paid message",
		Paid:            true,
		StripeSessionID: &sid,
		PaidAt:          &paidAt,
	}
	id, err := repo.Insert(ctx, lead)
	require.NoError(t, err)

	found, err := repo.FindBySessionID(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.True(t, found.Paid)
	assert.Equal(t, enums.LeadSourceWebPaid, found.Source)

	dup := *lead
	dup.ID = 0
	_, err = repo.Insert(ctx, &dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSession))

	missing, err := repo.FindBySessionID(ctx, "cs_test_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryFreeLeadsShareNullSession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.Insert(ctx, &models.Lead{Source: enums.LeadSourceWeb, Name: "Ada", Message: "message body"})
		require.NoError(t, err)
	}

	found, err := repo.FindBySessionID(ctx, "  ")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryListBefore(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := repo.Insert(ctx, &models.Lead{Source: enums.LeadSourceWeb, Name: "Ada", Email: "ada@example.com", Message: "message body"})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	rows, err := repo.ListBefore(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ids[3], rows[0].ID)
	assert.Equal(t, ids[2], rows[1].ID)

	rows, err = repo.ListBefore(ctx, ids[2], 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ids[1], rows[0].ID)
	assert.Equal(t, ids[0], rows[1].ID)

	rows, err = repo.ListBefore(ctx, ids[0], 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
