package vocab

// Placeholder text used when a lookup cannot fill a field.
const (
	NoDefinition      = "No definition found."
	UnknownPOS        = "unknown"
	NoTranslation     = "無法取得翻譯"
	NoExample         = "No example available."
	NoExampleZh       = "無例句"
	FailedDefinition  = "Could not retrieve definition."
	FailedTranslation = "查詢失敗 (請檢查網路)"
	FailedExample     = "-"
)

// ExportFilename is the default file name for an exported collection.
const ExportFilename = "nook_vocabulary.json"

// Entry is one vocabulary record: a word plus its bilingual metadata.
// The JSON field names are the export file format.
type Entry struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"partOfSpeech"`
	IPA          string `json:"ipa"`
	DefinitionEn string `json:"definitionEn"`
	DefinitionZh string `json:"definitionZh"`
	ExampleEn    string `json:"exampleEn"`
	ExampleZh    string `json:"exampleZh"`
}

// FillDefaults replaces empty fields with the lookup placeholders.
// IPA is allowed to stay empty.
func (e Entry) FillDefaults() Entry {
	if e.PartOfSpeech == "" {
		e.PartOfSpeech = UnknownPOS
	}
	if e.DefinitionEn == "" {
		e.DefinitionEn = NoDefinition
	}
	if e.DefinitionZh == "" {
		e.DefinitionZh = NoTranslation
	}
	if e.ExampleEn == "" {
		e.ExampleEn = NoExample
	}
	if e.ExampleZh == "" {
		e.ExampleZh = NoExampleZh
	}
	return e
}

// Failed returns the entry shown when a lookup could not reach its services.
func Failed(word string) Entry {
	return Entry{
		Word:         word,
		PartOfSpeech: UnknownPOS,
		DefinitionEn: FailedDefinition,
		DefinitionZh: FailedTranslation,
		ExampleEn:    FailedExample,
		ExampleZh:    FailedExample,
	}
}

// IsFailed reports whether e is a transport-failure placeholder.
func (e Entry) IsFailed() bool {
	return e.DefinitionEn == FailedDefinition && e.DefinitionZh == FailedTranslation
}
