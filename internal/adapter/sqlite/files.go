package sqlite

const (
	// DictionaryPrefix and TranslationPrefix are the file name prefixes of
	// the two database kinds inside a data directory.
	DictionaryPrefix  = "dictionary_"
	TranslationPrefix = "translation_"
	// DBSuffix is the database file extension.
	DBSuffix = ".db"
)

// DictionaryFileName returns the file name of a language's dictionary
// database (dictionary_<lang>.db).
func DictionaryFileName(lang string) string {
	return DictionaryPrefix + lang + DBSuffix
}

// TranslationFileName returns the file name of an ordered language pair's
// translation database (translation_<src>_<tgt>.db).
func TranslationFileName(src, tgt string) string {
	return TranslationPrefix + src + "_" + tgt + DBSuffix
}
