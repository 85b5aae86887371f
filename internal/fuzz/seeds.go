package fuzztests

import "testing"

// corpusSeeds covers the documentation shapes that matter: call-seq markers,
// headings, lists, definition lists, fenced and indented verbatim, inline
// markup, and a few malformed fragments.
var corpusSeeds = []string{
	"",
	"\n\n\n",
	"Returns a new array.\n",
	"call-seq:\n  array.count -> integer\n  array.count(obj) -> integer\n\nReturns a count of specified elements.\n",
	"  array.pop -> object or nil\n\nRemoves and returns the last element.\n",
	"== Exceptions\n\nRaises IndexError when the offset is out of range.\n",
	"=== Heading\n\nSome prose with +mono+ and a #ref link.\n\n---\n\nMore prose.\n",
	"- first item\n- second item\n  - nested\n",
	"1. one\n2. two\n",
	"index :: an Integer offset\nlength :: element count\n",
	"  indented verbatim line\n  second line\n",
	"```\nfenced block\n",
	"+unterminated mono\n",
	"term ::\n",
	"====== deep heading\n",
	"Related: Array#count, Array#size\n",
	"== method: count\ncall-seq:\n  count -> integer\n",
	"With no argument, returns all elements.\nWith a block given, yields each.\n",
	"\xff\xfe broken utf8 \x80\n",
	"a\tb\tc\n\t\tindent via tabs\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range corpusSeeds {
		f.Add([]byte(seed))
	}
}
