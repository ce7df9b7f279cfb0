package solo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ib-77/chainer/pkg/rop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsLegit(_ context.Context, s string) (bool, string) {
	if !strings.Contains(strings.ToLower(s), "legit") {
		return false, "This ain't legit"
	}
	return true, ""
}

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok := Validate(ctx, "I'm LEGIT", containsLegit)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, "I'm LEGIT", ok.Result())

	bad := Validate(ctx, "I'm l", containsLegit)
	assert.True(t, bad.IsFailure())
	assert.Equal(t, "This ain't legit", bad.Reason())
}

func TestAndValidate_SkipsOnFailure(t *testing.T) {
	t.Parallel()

	called := false
	res := AndValidate(context.Background(), Failure[string]("earlier"),
		func(ctx context.Context, in string) (bool, string) {
			called = true
			return true, ""
		})
	assert.False(t, called)
	assert.Equal(t, "earlier", res.Reason())
}

func TestSwitch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	res := Switch(ctx, Succeed(2), func(ctx context.Context, r int) rop.Result[string] {
		return rop.Success(strings.Repeat("a", r))
	})
	assert.Equal(t, "aa", res.Result())

	called := false
	res = Switch(ctx, Fail[int](errors.New("boom")), func(ctx context.Context, r int) rop.Result[string] {
		called = true
		return rop.Success("x")
	})
	assert.False(t, called)
	assert.Equal(t, "boom", res.Reason())
}

func TestMap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	res := Map(ctx, Succeed("abc"), func(ctx context.Context, r string) int { return len(r) })
	assert.Equal(t, 3, res.Result())

	res = Map(ctx, Failure[string]("nope"), func(ctx context.Context, r string) int { return len(r) })
	assert.True(t, res.IsFailure())
}

func TestTry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	res := Try(ctx, Succeed("7"), func(ctx context.Context, r string) (int, error) { return 7, nil })
	require.True(t, res.IsSuccess())
	assert.Equal(t, 7, res.Result())

	res = Try(ctx, Succeed("x"), func(ctx context.Context, r string) (int, error) {
		return 0, errors.New("try-error")
	})
	assert.Equal(t, "try-error", res.Reason())

	res = Try(ctx, Succeed("x"), func(ctx context.Context, r string) (int, error) {
		panic("kaboom")
	})
	assert.True(t, res.IsFailure())
	assert.Contains(t, res.Reason(), "kaboom")
}

func TestTeeAndFailOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seen := 0
	res := Tee(ctx, Succeed(5), func(ctx context.Context, r rop.Result[int]) { seen = r.Result() })
	assert.Equal(t, 5, seen)
	assert.Equal(t, 5, res.Result())

	res = FailOnError(ctx, res, func(ctx context.Context, in int) error {
		if in > 3 {
			return errors.New("too big")
		}
		return nil
	})
	assert.Equal(t, "too big", res.Reason())
}

func TestFinally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	onSuccess := func(ctx context.Context, r int) string { return "ok" }
	onError := func(ctx context.Context, err error) string { return "fail: " + err.Error() }

	assert.Equal(t, "ok", Finally(ctx, Succeed(1), onSuccess, onError))
	assert.Equal(t, "fail: e", Finally(ctx, Failure[int]("e"), onSuccess, onError))
}
