package autocert

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	suffixAlphabet = "0123456789abcdef"
	// 6 hex characters, 3 bytes of entropy
	suffixLength = 6
)

// RandomSuffix returns 6 lowercase hex characters from a crypto random source.
func RandomSuffix() (string, error) {
	return gonanoid.Generate(suffixAlphabet, suffixLength)
}

// CertificateFileName builds "{name}-Certificate-{suffix}.pdf". Path separators
// in the name are replaced so the file always lands inside the output directory.
func CertificateFileName(name, suffix string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return fmt.Sprintf("%s-Certificate-%s.pdf", safe, suffix)
}
