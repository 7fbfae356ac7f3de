// assets/embed.go
//
// Files compiled into the binaries.
//   - words/words_N.txt: default dictionaries for side-N puzzles.
//   - sql/*.sql:         schema migrations, applied in lexical order.

package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed words/*.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary for side-letter words, as written.
func WordList(side int) ([]string, error) {
	return readLines(fmt.Sprintf("words/words_%d.txt", side))
}

// Migrations returns the embedded sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is a literal embedded directory; Sub cannot fail on it.
		panic(err)
	}
	return sub
}
