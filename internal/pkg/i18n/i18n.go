package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

var (
	locales       = make(map[string]Translations)
	defaultLocale = "pt"
	mu            sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/messages.yaml for every
// locale directory present. Missing files are skipped so a partial catalog
// does not prevent startup.
func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			locale := entry.Name()
			filePath := filepath.Join(localePath, locale, "messages.yaml")

			data, err := os.ReadFile(filePath)
			if err != nil {
				continue
			}

			var config struct {
				Messages Translations `yaml:"MESSAGES"`
			}

			if err := yaml.Unmarshal(data, &config); err != nil {
				return fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			locales[locale] = config.Messages
		}
	}

	return nil
}

func SetDefaultLocale(locale string) {
	mu.Lock()
	defer mu.Unlock()
	defaultLocale = locale
}

// T translates key in the default locale, falling back to the key itself
// when no catalog entry exists.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return translate(defaultLocale, key)
}

// Tf translates key and formats it with args.
func Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return translate(locale, key)
}

func translate(locale, key string) string {
	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}
	if locale != "en" {
		if trans, ok := locales["en"]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}
	return key
}
