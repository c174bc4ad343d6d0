package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/contabridge-dev/contabridge/internal/model"
)

const (
	accountNumFields     = 3
	accountColCode       = 0
	accountColName       = 1
	accountColPartyReq   = 2
	partyNumFields       = 5
	partyColCode         = 0
	partyColName         = 1
	partyColPaymentTerm  = 2
	partyColRecvInstr    = 3
	partyColPayableInstr = 4
)

// ReadAccounts reads an account book CSV (code,name,party_required).
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = accountNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		partyRequired := false
		if rec[accountColPartyReq] != "" {
			partyRequired, err = strconv.ParseBool(rec[accountColPartyReq])
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing party_required %q: %w", i+2, rec[accountColPartyReq], err)
			}
		}
		accounts = append(accounts, model.Account{
			Code:          rec[accountColCode],
			Name:          rec[accountColName],
			PartyRequired: partyRequired,
		})
	}
	return accounts, nil
}

// ReadParties reads a party book CSV
// (code,name,payment_term,receivable_instrument,payable_instrument).
func ReadParties(r io.Reader) ([]model.Party, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = partyNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading parties CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var parties []model.Party
	for _, rec := range records[1:] {
		parties = append(parties, model.Party{
			Code:                 rec[partyColCode],
			Name:                 rec[partyColName],
			PaymentTerm:          rec[partyColPaymentTerm],
			ReceivableInstrument: rec[partyColRecvInstr],
			PayableInstrument:    rec[partyColPayableInstr],
		})
	}
	return parties, nil
}

// LoadAccounts reads an account book CSV from disk.
func LoadAccounts(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening account book: %w", err)
	}
	defer f.Close()
	return ReadAccounts(f)
}

// LoadParties reads a party book CSV from disk.
func LoadParties(path string) ([]model.Party, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening party book: %w", err)
	}
	defer f.Close()
	return ReadParties(f)
}
