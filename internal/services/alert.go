package services

type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertDanger  AlertType = "danger"
)

// Alert is a user-visible message attached to a view. Fetch failures surface
// as alerts instead of errors.
type Alert struct {
	Type           AlertType              `json:"type"`
	Message        string                 `json:"message"`
	TranslationKey string                 `json:"translation_key,omitempty"`
	Params         map[string]interface{} `json:"params,omitempty"`
}

func newAlert(alertType AlertType, key, message string) Alert {
	return Alert{Type: alertType, TranslationKey: key, Message: message}
}

func (a Alert) withParam(name string, value interface{}) Alert {
	params := make(map[string]interface{}, len(a.Params)+1)
	for k, v := range a.Params {
		params[k] = v
	}
	params[name] = value
	a.Params = params
	return a
}
