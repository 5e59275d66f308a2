package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"nav": map[string]interface{}{
			"home": "Home",
			"settings": map[string]interface{}{
				"title": "Settings",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "Home", flat["nav.home"])
	assert.Equal(t, "Settings", flat["nav.settings.title"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "No placeholders",
			text:     "Hello World",
			args:     nil,
			expected: "Hello World",
		},
		{
			name:     "Single placeholder",
			text:     "Hello {name}",
			args:     map[string]interface{}{"name": "John"},
			expected: "Hello John",
		},
		{
			name:     "Multiple placeholders",
			text:     "{greeting} {name}, you have {count} messages",
			args:     map[string]interface{}{"greeting": "Hi", "name": "Doe", "count": 5},
			expected: "Hi Doe, you have 5 messages",
		},
		{
			name:     "Missing argument",
			text:     "Hello {name}",
			args:     map[string]interface{}{"other": "val"},
			expected: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetLocale(t *testing.T) {
	t.Run("Default locale", func(t *testing.T) {
		assert.Equal(t, "pt", GetLocale(context.Background()))
	})

	t.Run("Locale from LocaleContextKey", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LocaleContextKey, "en")
		assert.Equal(t, "en", GetLocale(ctx))
	})
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("pt"))
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("es"))
}

func TestTranslateLogic(t *testing.T) {
	mutex.Lock()
	oldTrans := translations
	translations = make(map[string]map[string]string)
	translations["pt"] = map[string]string{
		"test.hello":   "Olá",
		"test.welcome": "Bem-vindo {name}",
	}
	translations["en"] = map[string]string{
		"test.hello": "Hello",
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	t.Run("Direct lookup", func(t *testing.T) {
		assert.Equal(t, "Hello", Translate("en", "test.hello"))
		assert.Equal(t, "Olá", Translate("pt", "test.hello"))
	})

	t.Run("Fallback to default", func(t *testing.T) {
		assert.Equal(t, "Bem-vindo Ana", Translate("en", "test.welcome", map[string]interface{}{"name": "Ana"}))
	})

	t.Run("Fallback to key", func(t *testing.T) {
		assert.Equal(t, "missing.key", Translate("en", "missing.key"))
	})
}

func TestT(t *testing.T) {
	mutex.Lock()
	oldTrans := translations
	translations = make(map[string]map[string]string)
	translations["en"] = map[string]string{
		"greet": "Hi {name}",
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	ctx := context.WithValue(context.Background(), LocaleContextKey, "en")
	assert.Equal(t, "Hi Pedro", T(ctx, "greet", map[string]interface{}{"name": "Pedro"}))
}

func TestLoadExecution(t *testing.T) {
	assert.NoError(t, Load())

	assert.Equal(t, "Página não encontrada", Translate("pt", "notfound.title"))
	assert.Equal(t, "Page not found", Translate("en", "notfound.title"))
	assert.Equal(t, "Nova inscrição", Translate("pt", "lead.new"))

	mutex.RLock()
	defer mutex.RUnlock()
	for key := range translations["pt"] {
		_, ok := translations["en"][key]
		assert.True(t, ok, "missing en translation for %s", key)
	}
}
