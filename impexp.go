package uangku

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// This file handles whole-state backups: a single JSON object holding the
// five collections under their store keys. This is also the shape the
// original app kept in its key-value storage, so a dump of that storage
// imports directly.

// ImportBackup reads a whole-state JSON backup and rebuilds a ledger from it.
// Collections are extracted by jsonpath so that extra keys or a partial
// backup are tolerated; missing collections import as empty.
func ImportBackup(r io.Reader) (*Ledger, error) {
	var jobj interface{}
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("could not parse backup: %w", err)
	}

	l := NewLedger()
	if err := importCollection(jobj, KeyAccounts, &l.accounts); err != nil {
		return nil, err
	}
	if err := importCollection(jobj, KeyPlatforms, &l.platforms); err != nil {
		return nil, err
	}
	if err := importCollection(jobj, KeyInvestments, &l.investments); err != nil {
		return nil, err
	}
	if err := importCollection(jobj, KeyTransactions, &l.transactions); err != nil {
		return nil, err
	}
	if err := importCollection(jobj, KeyReceivables, &l.receivables); err != nil {
		return nil, err
	}
	l.sortNewestFirst()
	l.recompute()
	return l, nil
}

// importCollection extracts one collection array from the parsed backup and
// decodes it into out through the records' own codecs.
func importCollection[T any](jobj interface{}, key string, out *[]T) error {
	jval, err := jsonpath.Get("$."+key, jobj)
	if err != nil {
		// the backup simply does not carry this collection
		return nil
	}
	list, ok := jval.([]interface{})
	if !ok {
		return fmt.Errorf("backup key %q is not an array", key)
	}
	for _, item := range list {
		// round-trip through json to reuse the record codecs
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("could not re-encode backup record in %q: %w", key, err)
		}
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("invalid record in backup key %q: %w", key, err)
		}
		*out = append(*out, record)
	}
	return nil
}

// orEmpty keeps an absent collection exporting as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ExportBackup writes the whole ledger state as a single JSON object with the
// five collections under their store keys.
func ExportBackup(w io.Writer, l *Ledger) error {
	l.sortNewestFirst()

	var obj jsonObjectWriter
	obj.Append(KeyAccounts, orEmpty(l.accounts))
	obj.Append(KeyPlatforms, orEmpty(l.platforms))
	obj.Append(KeyInvestments, orEmpty(l.investments))
	obj.Append(KeyTransactions, orEmpty(l.transactions))
	obj.Append(KeyReceivables, orEmpty(l.receivables))

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode backup: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write backup: %w", err)
	}
	return nil
}
