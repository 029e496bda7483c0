package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須フィールドが不足しています"
		case "invalid_enum":
			return "リテラルに一致しません"
		case "unknown_symbol":
			return "未登録のシンボルです"
		case "invalid_format":
			return "書式が不正です"
		case "length_mismatch":
			return "要素数が一致しません"
		case "union_no_match":
			return "どの候補にも一致しません"
		case "never_matches":
			return "この型には何も一致しません"
		case "module_not_loadable":
			return "モジュールを読み込めません"
		case "schema_not_found":
			return "モジュールに型カタログがありません"
		case "type_not_found":
			return "型が見つかりません"
		case "type_arity":
			return "型引数の数が一致しません"
		case "unbound_type_var":
			return "型変数が束縛されていません"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required field missing"
		case "invalid_enum":
			return "does not match literal"
		case "unknown_symbol":
			return "unknown symbol"
		case "invalid_format":
			return "invalid format"
		case "length_mismatch":
			return "length mismatch"
		case "union_no_match":
			return "no union alternative matched"
		case "never_matches":
			return "type matches nothing"
		case "module_not_loadable":
			return "module not loadable"
		case "schema_not_found":
			return "module has no type catalog"
		case "type_not_found":
			return "type not found"
		case "type_arity":
			return "wrong number of type arguments"
		case "unbound_type_var":
			return "unbound type variable"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
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

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
