package animations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
)

type settingsMap map[string]AnimatorSettings

func (m settingsMap) AnimatorSettings(name string) (AnimatorSettings, bool) {
	s, ok := m[name]
	return s, ok
}

type textureCall struct {
	path  graphics.TexturePath
	scale geom.Vector
}

type recordingTextures struct {
	calls   []textureCall
	missing map[graphics.TexturePath]bool
}

func (r *recordingTextures) SetTexture(_ graphics.ID, path graphics.TexturePath, scale geom.Vector) error {
	if r.missing[path] {
		return graphics.ErrTextureNotAvailable
	}
	r.calls = append(r.calls, textureCall{path, scale})
	return nil
}

func (r *recordingTextures) last() textureCall { return r.calls[len(r.calls)-1] }

func playerSettings() settingsMap {
	return settingsMap{"player": {
		Name: "player",
		Animations: []AnimationSettings{
			{Type: "idle", Frames: []string{"idle-0.png", "idle-1.png"}, FrameDuration: 0.5},
			{Type: "Walk", Frames: []string{"walk-0.png", "walk-1.png", "walk-2.png"}, FrameDuration: 0.1},
		},
	}}
}

func TestNewAnimatorErrors(t *testing.T) {
	id := graphics.NewID()

	tests := []struct {
		name    string
		repo    settingsMap
		initial AnimationType
		missing map[graphics.TexturePath]bool
		wantErr error
	}{
		{name: "no settings", repo: settingsMap{}, wantErr: ErrAnimatorSettingsNotFound},
		{name: "wrong name", repo: settingsMap{"player": {Name: "druid"}}, wantErr: ErrInvalidAnimatorSettings},
		{name: "unknown type", repo: settingsMap{"player": {Name: "player", Animations: []AnimationSettings{{Type: "dance", Frames: []string{"a"}, FrameDuration: 1}}}}, wantErr: ErrInvalidAnimatorSettings},
		{name: "no frames", repo: settingsMap{"player": {Name: "player", Animations: []AnimationSettings{{Type: "idle", FrameDuration: 1}}}}, wantErr: ErrInvalidAnimatorSettings},
		{name: "initial unsupported", repo: playerSettings(), initial: Attack, wantErr: ErrAnimationTypeNotSupported},
		{name: "missing texture", repo: playerSettings(), missing: map[graphics.TexturePath]bool{"walk-2.png": true}, wantErr: graphics.ErrTextureNotAvailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAnimator("player", id, &recordingTextures{missing: tc.missing}, tc.repo, tc.initial, Right)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestAnimatorFrames(t *testing.T) {
	tex := &recordingTextures{}
	a, err := NewAnimator("player", graphics.NewID(), tex, playerSettings(), Idle, Right)
	require.NoError(t, err)
	assert.Equal(t, textureCall{"idle-0.png", geom.Vec(1, 1)}, tex.last())

	assert.False(t, a.Update(200*time.Millisecond))
	assert.True(t, a.Update(300*time.Millisecond))
	assert.Equal(t, graphics.TexturePath("idle-1.png"), tex.last().path)
	assert.Equal(t, 1, a.FrameIndex())

	assert.True(t, a.Update(500*time.Millisecond), "wraps around")
	assert.Equal(t, 0, a.FrameIndex())
}

func TestAnimatorTransitions(t *testing.T) {
	tex := &recordingTextures{}
	a, err := NewAnimator("player", graphics.NewID(), tex, playerSettings(), Idle, Right)
	require.NoError(t, err)

	t.Run("type change resets and pushes on next update", func(t *testing.T) {
		require.NoError(t, a.SetAnimation(Walk))
		assert.Equal(t, Walk, a.AnimationType())
		assert.True(t, a.Update(0))
		assert.Equal(t, graphics.TexturePath("walk-0.png"), tex.last().path)
		assert.False(t, a.Update(0))
	})

	t.Run("direction mirrors texture", func(t *testing.T) {
		a.SetAnimationDirection(Left)
		assert.True(t, a.Update(0))
		assert.Equal(t, geom.Vec(-1, 1), tex.last().scale)
		assert.Equal(t, Left, a.AnimationDirection())
	})

	t.Run("unsupported type keeps state", func(t *testing.T) {
		err := a.SetAnimationWithDirection(Sleep, Right)
		assert.ErrorIs(t, err, ErrAnimationTypeNotSupported)
		assert.Equal(t, Walk, a.AnimationType())
		assert.Equal(t, Left, a.AnimationDirection())
	})

	t.Run("same state is not a change", func(t *testing.T) {
		require.NoError(t, a.SetAnimationWithDirection(Walk, Left))
		assert.False(t, a.Update(0))
	})
}

func TestParseAnimationType(t *testing.T) {
	got, err := ParseAnimationType("ATTACK")
	require.NoError(t, err)
	assert.Equal(t, Attack, got)
	assert.Equal(t, "Attack", got.String())

	_, err = ParseAnimationType("")
	assert.Error(t, err)
}
