package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillbooks/quillbooks/internal/sequence"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		docType sequence.DocType
		n       int64
		want    string
	}{
		{sequence.Invoice, 1, "INV-00001"},
		{sequence.Invoice, 5, "INV-00005"},
		{sequence.Quote, 1, "QT-00001"},
		{sequence.Payment, 3, "PAY-00003"},
		{sequence.Expense, 2, "EXP-00002"},
		{sequence.Invoice, 99999, "INV-99999"},
		{sequence.Invoice, 100000, "INV-100000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sequence.Format(tt.docType, tt.n))
	}
}
