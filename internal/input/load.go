package input

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/swsched/swsched/pkg/swsched"
)

// EnvPrefix prefixes environment overrides, e.g.
// SWSCHED_WEIGHTS_PLACEHOLDER=5000.
const EnvPrefix = "SWSCHED"

type Loader struct {
	preferences string
	envFile     string
	validate    *validator.Validate
	log         logr.Logger
}

type Option func(l *Loader)

// WithPreferences reads preference records from path, as CSV or YAML
// depending on the extension. It overrides preferences_file.
func WithPreferences(path string) Option {
	return func(l *Loader) {
		l.preferences = path
	}
}

// WithEnvFile loads environment overrides from a dotenv file. A missing
// file is not an error.
func WithEnvFile(path string) Option {
	return func(l *Loader) {
		l.envFile = path
	}
}

func WithLogger(log logr.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

func NewLoader(options ...Option) *Loader {
	l := &Loader{envFile: ".env", validate: validator.New(), log: logr.Discard()}
	for _, option := range options {
		option(l)
	}
	return l
}

// Load reads, validates and resolves the configuration file at path.
func Load(path string, options ...Option) (*swsched.Config, error) {
	return NewLoader(options...).Load(path)
}

func (l *Loader) Load(path string) (*swsched.Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", l.envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f, viper.DecodeHook(decodeHook())); err != nil {
		return nil, &swsched.ConfigError{Field: filepath.Base(path), Err: err}
	}

	prefs := l.preferences
	if prefs == "" && f.PreferencesFile != "" {
		prefs = f.PreferencesFile
		if !filepath.IsAbs(prefs) {
			prefs = filepath.Join(filepath.Dir(path), prefs)
		}
	}
	if prefs != "" {
		ps, err := ReadPreferencesFile(prefs)
		if err != nil {
			return nil, err
		}
		f.Preferences = append(f.Preferences, ps...)
	}
	l.log.V(1).Info("read configuration", "path", path, "preferences", prefs, "people", len(f.People), "courses", len(f.Courses))

	return l.Resolve(&f)
}

// Resolve validates f and turns it into a Config.
func (l *Loader) Resolve(f *File) (*swsched.Config, error) {
	if err := l.validate.Struct(f); err != nil {
		return nil, validationError(err)
	}
	cfg, err := resolve(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	w := swsched.DefaultWeights()
	for _, name := range swsched.Terms() {
		v.SetDefault("weights."+name, w.Of(name))
	}
	v.SetDefault("limits.community_max_courses", DefaultCommunityMaxCourses)
	v.SetDefault("preferred_venue", "")
	v.SetDefault("preferences_file", "")
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &swsched.ConfigError{Err: err}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("failed %q", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q (%s)", fe.Tag(), fe.Param())
		}
		name, _ := fe.Value().(string)
		errs = append(errs, &swsched.ConfigError{
			Field:   strings.TrimPrefix(fe.Namespace(), "File."),
			Name:    name,
			Message: msg,
		})
	}
	return errors.Join(errs...)
}
