package services

import (
	"errors"
	"testing"

	"ma-helper/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoLifecycle(t *testing.T) {
	f := newFixture(t)

	for _, in := range []*CreateMemoInput{
		{EngineerID: "eng3", Date: "2025-02-02", Time: "14:00", Text: "오후 점검"},
		{EngineerID: "eng3", Date: "2025-02-02", Time: "09:30", Text: "오전 회의"},
		{EngineerID: "eng3", Date: "2025-02-01", Time: "18:00", Text: "전날 정리"},
		{EngineerID: "eng4", Date: "2025-02-02", Time: "10:00", Text: "다른 사람"},
	} {
		_, err := f.memos.Create(ctx, in, nil)
		require.NoError(t, err)
	}

	all, err := f.memos.List(ctx, "eng3", "", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"전날 정리", "오전 회의", "오후 점검"}, []string{all[0].Text, all[1].Text, all[2].Text})

	day, err := f.memos.List(ctx, "eng3", "2025-02-02", nil)
	require.NoError(t, err)
	require.Len(t, day, 2)

	updated, err := f.memos.Update(ctx, day[0].ID, &MemoPatch{Text: "오전 회의 취소"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "09:30", updated.Time, "time kept when not provided")
	assert.Equal(t, "오전 회의 취소", updated.Text)

	updated, err = f.memos.Update(ctx, day[0].ID, &MemoPatch{Time: "11:00"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "11:00", updated.Time)
	assert.Equal(t, "오전 회의 취소", updated.Text)

	require.NoError(t, f.memos.Delete(ctx, day[0].ID, nil))
	assert.ErrorIs(t, f.memos.Delete(ctx, day[0].ID, nil), domain.ErrMemoNotFound)

	all, err = f.memos.List(ctx, "eng3", "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateMemo_Rejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.memos.Create(ctx, &CreateMemoInput{EngineerID: "eng3", Date: "2025-02-30", Time: "25:00"}, nil)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"text"}, verr.Missing)
	assert.Equal(t, []string{"date", "time"}, verr.Invalid)

	_, err = f.memos.Create(ctx, &CreateMemoInput{EngineerID: "ghost", Date: "2025-02-01", Time: "10:00", Text: "t"}, nil)
	assert.ErrorIs(t, err, domain.ErrEngineerNotFound)

	_, err = f.memos.Create(ctx, &CreateMemoInput{EngineerID: "eng3", Date: "2025-02-01", Time: "10:00", Text: "t"},
		&Actor{EngineerID: "eng4"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMemoOwnership(t *testing.T) {
	f := newFixture(t)
	owner := &Actor{EngineerID: "eng3", Name: "황인성"}
	other := &Actor{EngineerID: "eng4", Name: "한형구"}

	created, err := f.memos.Create(ctx, &CreateMemoInput{EngineerID: "eng3", Date: "2025-02-01", Time: "10:00", Text: "t"}, owner)
	require.NoError(t, err)

	_, err = f.memos.Update(ctx, created.Memo.ID, &MemoPatch{Text: "hijack"}, other)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, f.memos.Delete(ctx, created.Memo.ID, other), domain.ErrForbidden)
	_, err = f.memos.List(ctx, "eng3", "", other)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.memos.Update(ctx, "missing", &MemoPatch{Text: "x"}, owner)
	assert.ErrorIs(t, err, domain.ErrMemoNotFound)
	_, err = f.memos.Update(ctx, created.Memo.ID, &MemoPatch{Time: "9am"}, owner)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
