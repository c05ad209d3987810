package uangku

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// encodeJSONL marshals every item on its own line, in JSONL format.
func encodeJSONL[T any](items []T) ([]byte, error) {
	var buf bytes.Buffer
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// decodeJSONL unmarshals one item per non-empty line.
func decodeJSONL[T any](data []byte) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue // Skip empty lines
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("could not decode line %q: %w", string(line), err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return items, nil
}

// loadKey decodes one collection from the store. A missing key decodes to the
// empty collection.
func loadKey[T any](s Store, key string) ([]T, error) {
	data, err := s.Load(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeJSONL[T](data)
}

// DecodeLedger loads the five collections from the store and rebuilds a
// consistent ledger. Balances are recomputed from the log on load, so a
// hand-edited data file cannot leave the cache stale.
func DecodeLedger(s Store) (*Ledger, error) {
	l := NewLedger()
	var err error
	if l.accounts, err = loadKey[Account](s, KeyAccounts); err != nil {
		return nil, err
	}
	if l.platforms, err = loadKey[Platform](s, KeyPlatforms); err != nil {
		return nil, err
	}
	if l.investments, err = loadKey[Investment](s, KeyInvestments); err != nil {
		return nil, err
	}
	if l.transactions, err = loadKey[Transaction](s, KeyTransactions); err != nil {
		return nil, err
	}
	if l.receivables, err = loadKey[Receivable](s, KeyReceivables); err != nil {
		return nil, err
	}
	l.sortNewestFirst()
	l.recompute()
	return l, nil
}

// EncodeLedger persists all five collections to the store in canonical form:
// one JSON record per line, transactions newest first, stable key order
// within each record.
func EncodeLedger(s Store, l *Ledger) error {
	l.sortNewestFirst()

	save := func(key string, data []byte, err error) error {
		if err != nil {
			return fmt.Errorf("could not encode %q: %w", key, err)
		}
		return s.Save(key, data)
	}

	data, err := encodeJSONL(l.accounts)
	if err := save(KeyAccounts, data, err); err != nil {
		return err
	}
	data, err = encodeJSONL(l.platforms)
	if err := save(KeyPlatforms, data, err); err != nil {
		return err
	}
	data, err = encodeJSONL(l.investments)
	if err := save(KeyInvestments, data, err); err != nil {
		return err
	}
	data, err = encodeJSONL(l.transactions)
	if err := save(KeyTransactions, data, err); err != nil {
		return err
	}
	data, err = encodeJSONL(l.receivables)
	if err := save(KeyReceivables, data, err); err != nil {
		return err
	}
	return nil
}
