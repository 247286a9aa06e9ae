package i18n

import "strings"

// Affordance codes rendered next to form fields.
const (
	CodeAdd         = "add"         // add button of lists and tables
	CodeEdit        = "edit"        // edit dialog title of a table row
	CodeSave        = "save"        // confirm the staged row
	CodeCancel      = "cancel"      // discard the staged row
	CodeEnterItem   = "enter_item"  // placeholder of a primitive list item
	CodeSelect      = "select"      // placeholder of a single select
	CodeSelectMany  = "select_many" // placeholder of a multi select
	CodeSearch      = "search"      // search box of a multi select
	CodeNoResults   = "no_results"  // filtered multi select is empty
	CodeEmptyTable  = "empty_table" // table without rows
	CodeActions     = "actions"     // table action column header
	CodeLoading     = "loading"     // reference options are being fetched
	CodeUnavailable = "unavailable" // reference lookup produced nothing
)

// Translator retrieves localized messages for affordance codes.
// data provides values to embed in the message; "label" is the field label.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		CodeAdd:         "Add {label}",
		CodeEdit:        "Edit {label}",
		CodeSave:        "Save",
		CodeCancel:      "Cancel",
		CodeEnterItem:   "Enter {label} item",
		CodeSelect:      "Select {label}",
		CodeSelectMany:  "Select {label}...",
		CodeSearch:      "Search {label}...",
		CodeNoResults:   "No results found",
		CodeEmptyTable:  "No items yet",
		CodeActions:     "Actions",
		CodeLoading:     "Loading...",
		CodeUnavailable: "No options available",
	},
	"ja": {
		CodeAdd:         "{label}を追加",
		CodeEdit:        "{label}を編集",
		CodeSave:        "保存",
		CodeCancel:      "キャンセル",
		CodeEnterItem:   "{label}の項目を入力",
		CodeSelect:      "{label}を選択",
		CodeSelectMany:  "{label}を選択...",
		CodeSearch:      "{label}を検索...",
		CodeNoResults:   "該当する項目がありません",
		CodeEmptyTable:  "項目がまだありません",
		CodeActions:     "操作",
		CodeLoading:     "読み込み中...",
		CodeUnavailable: "選択肢がありません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// New returns the built-in Translator for lang ("en"/"ja"). Other languages
// fall back to English.
func New(lang string) Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	currentTranslator = New(lang)
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Current returns the process-wide Translator.
func Current() Translator { return currentTranslator }

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
