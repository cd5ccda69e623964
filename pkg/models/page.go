package models

import "html/template"

// Toast kinds map to toastr methods.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a one-shot notification shown on the next rendered page.
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NotifyOptions are the toastr defaults rendered into every page.
type NotifyOptions struct {
	CloseButton       bool   `json:"closeButton" koanf:"close_button"`
	Debug             bool   `json:"debug" koanf:"debug"`
	NewestOnTop       bool   `json:"newestOnTop" koanf:"newest_on_top"`
	ProgressBar       bool   `json:"progressBar" koanf:"progress_bar"`
	PositionClass     string `json:"positionClass" koanf:"position_class"`
	PreventDuplicates bool   `json:"preventDuplicates" koanf:"prevent_duplicates"`
	ShowDuration      string `json:"showDuration" koanf:"show_duration"`
	HideDuration      string `json:"hideDuration" koanf:"hide_duration"`
	TimeOut           string `json:"timeOut" koanf:"timeout"`
	ExtendedTimeOut   string `json:"extendedTimeOut" koanf:"extended_timeout"`
	ShowEasing        string `json:"showEasing" koanf:"show_easing"`
	HideEasing        string `json:"hideEasing" koanf:"hide_easing"`
	ShowMethod        string `json:"showMethod" koanf:"show_method"`
	HideMethod        string `json:"hideMethod" koanf:"hide_method"`
}

// DefaultNotifyOptions mirrors the options the site has always used.
func DefaultNotifyOptions() NotifyOptions {
	return NotifyOptions{
		CloseButton:     true,
		ProgressBar:     true,
		PositionClass:   "toast-bottom-right",
		ShowDuration:    "300",
		HideDuration:    "1000",
		TimeOut:         "5000",
		ExtendedTimeOut: "1000",
		ShowEasing:      "swing",
		HideEasing:      "linear",
		ShowMethod:      "fadeIn",
		HideMethod:      "fadeOut",
	}
}

// ArticleCard is an article prepared for display in a category list.
type ArticleCard struct {
	Article
	CategoryID ID
	Body       template.HTML
}

// Option is one entry of the category dropdown.
type Option struct {
	Category
	Selected bool
}

// FormView is the projection of the form state and its field values.
type FormView struct {
	State   FormState
	Draft   ArticleDraft
	Options []Option
}

func (f FormView) Visible() bool { return f.State.Visible() }
func (f FormView) Label() string { return f.State.Label() }

// NewFormView selects the draft's category in the dropdown, or the first one
// when the draft has none.
func NewFormView(state FormState, draft ArticleDraft, categories []Category) FormView {
	opts := make([]Option, len(categories))
	matched := false
	for i, c := range categories {
		opts[i] = Option{Category: c}
		if !matched && draft.IDCategoria != 0 && c.ID == draft.IDCategoria {
			opts[i].Selected = true
			matched = true
		}
	}
	if !matched && len(opts) > 0 {
		opts[0].Selected = true
	}
	return FormView{State: state, Draft: draft, Options: opts}
}

// Page is everything one rendered screen shows. Templates only read from it.
type Page struct {
	Header      string
	Categories  []Category
	Current     *Category
	Articles    []ArticleCard
	Form        FormView
	Toasts      []Toast
	Notify      NotifyOptions
	AuthEnabled bool
}

// Listing reports whether the article list region is rendered.
func (p Page) Listing() bool {
	return p.Current != nil && !p.Form.Visible()
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id ID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
