package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/anjiri1684/exam_qr_masking/models"
)

const notGraded = "Not graded"

var csvHeader = []string{"Student Name", "Student Email", "QR Code", "Score"}

func FormatScore(score *float64) string {
	if score == nil {
		return notGraded
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

func RevealCSV(rows []models.RevealMapping) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.StudentName, r.StudentEmail, r.QRCode, FormatScore(r.Score)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
