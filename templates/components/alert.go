package components

import (
	"github.com/a-h/templ"
)

// Alert variants
const (
	AlertError   = "error"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

var alertClasses = map[string]string{
	AlertError:   "alert alert-error",
	AlertSuccess: "alert alert-success",
	AlertInfo:    "alert alert-info",
}

// Alert renders a dismissable message box. Errors are announced assertively.
func Alert(variant, message string) templ.Component {
	class, ok := alertClasses[variant]
	if !ok {
		class = alertClasses[AlertInfo]
	}
	role := "status"
	if variant == AlertError {
		role = "alert"
	}
	return Render(func(h *HTML) {
		h.Raw(`<div id="alert"`).Attr("class", class).Attr("role", role).Raw(` x-data="{ open: true }" x-show="open">`)
		h.Raw(`<span class="alert-message">`).Text(message).Raw(`</span>`)
		h.Raw(`<button type="button" class="alert-close" aria-label="Fechar" @click="open = false">&times;</button>`)
		h.Raw(`</div>`)
	})
}

// CSRFField is the hidden input echo's CSRF middleware reads on POST
func CSRFField(token string) templ.Component {
	return Render(func(h *HTML) {
		h.Raw(`<input type="hidden" name="_csrf"`).Attr("value", token).Raw(`>`)
	})
}
