package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/models"
)

const sampleCSV = `id,date,amount,category,description,kind
t1,2025-01-05,12.50,Food,Corner cafe,expense
t2,2025-01-06,"1,200.00",rent,January rent,
t3,2025-01-07,3000,salary,Payroll,income
,2025-01-08,-45.99,subscriptions,Streaming,
t5,2025-01-09,(10.00),fees,Bank fee,
`

const sampleJSON = `[
  {"id": "a", "date": "2025-02-01", "amount": 19.99, "category": "food", "description": "Lunch", "kind": "expense"},
  {"id": "b", "date": "2025-02-02T08:30:00Z", "amount": "2500.00", "category": "salary", "kind": "credit"},
  {"date": "2025-02-03", "amount": -7.5, "category": "", "description": "Parking"}
]`

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012001
<NAME>ACME PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK
<MEMO>Landlord
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestReadCSV(t *testing.T) {
	txns, err := ReadCSV(strings.NewReader(sampleCSV), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, txns, 5)

	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, 12.5, txns[0].Amount)
	assert.Equal(t, "Food", txns[0].Category)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, models.KindExpense, txns[0].Kind)

	assert.Equal(t, 1200.0, txns[1].Amount)
	assert.Equal(t, models.KindExpense, txns[1].Kind)

	assert.Equal(t, models.KindIncome, txns[2].Kind)

	assert.Equal(t, 45.99, txns[3].Amount)
	assert.Equal(t, models.KindExpense, txns[3].Kind)
	assert.NotEmpty(t, txns[3].ID)

	assert.Equal(t, 10.0, txns[4].Amount)
	assert.Equal(t, models.KindExpense, txns[4].Kind)
}

func TestReadCSV_SyntheticIDsAreStable(t *testing.T) {
	first, err := ReadCSV(strings.NewReader(sampleCSV), DefaultOptions())
	require.NoError(t, err)
	second, err := ReadCSV(strings.NewReader(sampleCSV), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first[3].ID, second[3].ID)
}

func TestReadCSV_ColumnOrderAndDefaultKind(t *testing.T) {
	data := "Amount,Category,Date\n100,salary,01/03/2025\n"
	opts := DefaultOptions()
	opts.DateFormat = "02/01/2006"
	opts.DefaultKind = models.KindIncome

	txns, err := ReadCSV(strings.NewReader(data), opts)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, models.KindIncome, txns[0].Kind)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "missing header row"},
		{"missing column", "date,amount\n2025-01-01,5\n", `missing column "category"`},
		{"bad date", "date,amount,category\nyesterday,5,food\n", "line 2"},
		{"bad amount", "date,amount,category\n2025-01-01,five,food\n", "invalid amount"},
		{"bad kind", "date,amount,category,kind\n2025-01-01,5,food,transfer\n", "unknown transaction kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), DefaultOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadJSON(t *testing.T) {
	txns, err := ReadJSON(strings.NewReader(sampleJSON), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, 19.99, txns[0].Amount)
	assert.Equal(t, models.KindIncome, txns[1].Kind)
	assert.Equal(t, 2500.0, txns[1].Amount)
	assert.Equal(t, time.Date(2025, 2, 2, 8, 30, 0, 0, time.UTC), txns[1].Date.UTC())

	assert.Equal(t, models.KindExpense, txns[2].Kind)
	assert.Equal(t, 7.5, txns[2].Amount)
	assert.Equal(t, "uncategorized", txns[2].Category)
}

func TestReadJSON_Invalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"not": "an array"}`), DefaultOptions())
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`[{"amount": 1}]`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
}

func TestReadOFX(t *testing.T) {
	txns, err := ReadOFX(strings.NewReader("\n\n" + sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2024011501", txns[0].ID)
	assert.Equal(t, 25.5, txns[0].Amount)
	assert.Equal(t, models.KindExpense, txns[0].Kind)
	assert.Equal(t, "debit", txns[0].Category)
	assert.Equal(t, "STARBUCKS STORE #1234", txns[0].Description)
	assert.Equal(t, 2024, txns[0].Date.Year())

	assert.Equal(t, models.KindIncome, txns[1].Kind)
	assert.Equal(t, 1500.0, txns[1].Amount)
	assert.Equal(t, "credit", txns[1].Category)

	assert.Equal(t, "check", txns[2].Category)
	assert.Equal(t, "CHECK", txns[2].Description)
}

func TestReadOFX_Invalid(t *testing.T) {
	_, err := ReadOFX(strings.NewReader("not ofx"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "txns.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))
	ofxPath := filepath.Join(dir, "bank.qfx")
	require.NoError(t, os.WriteFile(ofxPath, []byte(sampleBankOFX), 0644))

	txns, err := LoadFile(csvPath, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, txns, 5)

	txns, err = LoadFile(ofxPath, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	_, err = LoadFile(filepath.Join(dir, "notes.txt"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadFile(filepath.Join(dir, "missing.json"), DefaultOptions())
	assert.Error(t, err)
}

func TestLoadFile_ErrorsNameTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,amount,category\nbad,1,x\n"), 0644))

	_, err := LoadFile(path, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.csv")
	assert.Contains(t, err.Error(), "line 2")
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.IngestConfig{
		DateFormat:  "01/02/2006",
		DefaultKind: "credit",
		Timezone:    "+02:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "01/02/2006", opts.DateFormat)
	assert.Equal(t, models.KindIncome, opts.DefaultKind)

	txns, err := ReadCSV(strings.NewReader("date,amount,category\n03/15/2025,10,x\n"), opts)
	require.NoError(t, err)
	_, offset := txns[0].Date.Zone()
	assert.Equal(t, 2*3600, offset)

	_, err = OptionsFromConfig(config.IngestConfig{DefaultKind: "sideways"})
	assert.Error(t, err)
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "series.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
		{"time": "2025-01-01", "value": 10},
		{"timestamp": "2025-01-02T00:00:00Z", "value": "12.5"}
	]`), 0644))

	series, err := LoadSeries(jsonPath, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 12.5, series[1].Value)

	csvPath := filepath.Join(dir, "series.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,value\n2025-01-01,5\n2025-01-02,-3\n"), 0644))

	series, err = LoadSeries(csvPath, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, -3.0, series[1].Value)

	noTime := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(noTime, []byte("value\n5\n"), 0644))
	_, err = LoadSeries(noTime, DefaultOptions())
	assert.Error(t, err)

	ofxPath := filepath.Join(dir, "bank.ofx")
	require.NoError(t, os.WriteFile(ofxPath, []byte(sampleBankOFX), 0644))
	_, err = LoadSeries(ofxPath, DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
