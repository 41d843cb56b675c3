package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AccountPurposes lists the reimbursement purposes one account pays for.
type AccountPurposes struct {
	Account  AccountTag `yaml:"account"`
	Purposes []string   `yaml:"purposes"`
}

// AccountTable maps stated purposes to funding accounts. Entries are
// consulted in order and it is read-only once built.
type AccountTable struct {
	entries []AccountPurposes
}

type accountsFile struct {
	Accounts []AccountPurposes `yaml:"accounts"`
}

// DefaultAccountTable is the club's standing classification.
func DefaultAccountTable() *AccountTable {
	t, _ := NewAccountTable([]AccountPurposes{
		{Account: AccountSOFC, Purposes: []string{"Senate bus token", "Transportation (not bus token)"}},
		{Account: AccountProfits, Purposes: []string{"Food"}},
	})
	return t
}

// NewAccountTable copies the given entries. Only SOFC and PROFITS may be named.
func NewAccountTable(entries []AccountPurposes) (*AccountTable, error) {
	out := make([]AccountPurposes, 0, len(entries))
	for _, e := range entries {
		if !e.Account.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAccount, e.Account)
		}
		out = append(out, AccountPurposes{
			Account:  e.Account,
			Purposes: append([]string(nil), e.Purposes...),
		})
	}
	return &AccountTable{entries: out}, nil
}

// LoadAccountTable reads a YAML file of the form
//
//	accounts:
//	  - account: SOFC
//	    purposes: ["Senate bus token"]
func LoadAccountTable(path string) (*AccountTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read account table: %w", err)
	}
	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse account table %s: %w", path, err)
	}
	return NewAccountTable(f.Accounts)
}

// Classify returns the first account whose purposes contain an exact,
// case-sensitive match, or AccountUnclassified.
func (t *AccountTable) Classify(purpose string) AccountTag {
	if t == nil {
		return AccountUnclassified
	}
	for _, e := range t.entries {
		for _, p := range e.Purposes {
			if p == purpose {
				return e.Account
			}
		}
	}
	return AccountUnclassified
}

// Entries returns a copy of the table in lookup order.
func (t *AccountTable) Entries() []AccountPurposes {
	if t == nil {
		return nil
	}
	out := make([]AccountPurposes, len(t.entries))
	for i, e := range t.entries {
		out[i] = AccountPurposes{Account: e.Account, Purposes: append([]string(nil), e.Purposes...)}
	}
	return out
}
