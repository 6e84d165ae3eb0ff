package resource

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// init loads application properties from YAML
func init() {
	var value, ok = os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if err := Init(value); err != nil {
		log.Printf("Properties not loaded, using defaults only: %v", err)
	}
}

// Init reads the YAML file at filepath and resolves ${ENV:default} placeholders in its values.
// Relative paths are searched from the working directory upwards.
func Init(path string) error {
	resolved, err := Locate(path)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(resolved)
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", resolved, err)
	}

	flat := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), flat)

	for key, value := range flat {
		properties.Set(key, value)
	}
	return nil
}

// Locate finds a relative file by walking up from the working directory.
func Locate(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
		}
		dir = parent
	}
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariables(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, resolveEnvVariables(s))
					continue
				}
				items = append(items, item)
			}
			result[fullKey] = items
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariables replaces every ${NAME:default} occurrence with the environment value or the default.
func resolveEnvVariables(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

// Set overrides a property, mostly useful in tests.
func Set(key string, value any) {
	properties.Set(key, value)
}

// SetDefault registers a value used when the key is absent from the properties file.
func SetDefault(key string, value any) {
	properties.SetDefault(key, value)
}

// IsSet reports whether the key has a value.
func IsSet(key string) bool {
	return properties.IsSet(key)
}

// ErrMissing is returned by Require when a mandatory property is empty.
var ErrMissing = errors.New("missing required property")

// Require returns the string property or ErrMissing when it is empty.
func Require(key string) (string, error) {
	value := properties.GetString(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}
	return value, nil
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

func GetFloat64(key string) float64 {
	return properties.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}
