package animations

// AnimationSettings lists the frames of one animation type.
type AnimationSettings struct {
	Type          string   `yaml:"type"`
	Frames        []string `yaml:"frames"`
	FrameDuration float64  `yaml:"frame_duration"`
}

// AnimatorSettings describes every animation of one animator.
type AnimatorSettings struct {
	Name       string              `yaml:"name"`
	Animations []AnimationSettings `yaml:"animations"`
}

// SettingsRepository looks animator settings up by animator name.
type SettingsRepository interface {
	AnimatorSettings(name string) (AnimatorSettings, bool)
}
