package store

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/optakt/accrual/reward"
)

var ErrNotFound = errors.New("store: no snapshot found")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	keyParams   = []byte("params")
	keySchedule = []byte("schedule")
	keyGlobal   = []byte("global")

	prefixAccount = []byte("account/")
)

// Store keeps the latest snapshot of an engine: one record for each of the
// params, schedule and global state, and one record per account.
type Store struct {
	db *leveldb.DB
}

func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open state database: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a store that lives only as long as the process.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not open memory database: %w", err)
	}
	return &Store{db: db}, nil
}

// Save replaces the stored snapshot in a single batch.
func (s *Store) Save(snapshot reward.Snapshot) error {

	batch := new(leveldb.Batch)

	it := s.db.NewIterator(util.BytesPrefix(prefixAccount), nil)
	for it.Next() {
		key := make([]byte, len(it.Key()))
		copy(key, it.Key())
		batch.Delete(key)
	}
	it.Release()
	err := it.Error()
	if err != nil {
		return fmt.Errorf("could not list stored accounts: %w", err)
	}

	records := []struct {
		key   []byte
		value interface{}
	}{
		{key: keyParams, value: &snapshot.Params},
		{key: keySchedule, value: &snapshot.Schedule},
		{key: keyGlobal, value: &snapshot.Global},
	}
	for _, record := range records {
		data, err := json.Marshal(record.value)
		if err != nil {
			return fmt.Errorf("could not encode %s: %w", record.key, err)
		}
		batch.Put(record.key, data)
	}

	for user, account := range snapshot.Accounts {
		account := account
		data, err := json.Marshal(&account)
		if err != nil {
			return fmt.Errorf("could not encode account %s: %w", user, err)
		}
		batch.Put(accountKey(user), data)
	}

	err = s.db.Write(batch, nil)
	if err != nil {
		return fmt.Errorf("could not write snapshot: %w", err)
	}

	return nil
}

// Load reads back the snapshot written by the last Save.
func (s *Store) Load() (reward.Snapshot, error) {

	var snapshot reward.Snapshot

	records := []struct {
		key   []byte
		value interface{}
	}{
		{key: keyParams, value: &snapshot.Params},
		{key: keySchedule, value: &snapshot.Schedule},
		{key: keyGlobal, value: &snapshot.Global},
	}
	for _, record := range records {
		data, err := s.db.Get(record.key, nil)
		if errors.Is(err, leveldb.ErrNotFound) {
			return reward.Snapshot{}, ErrNotFound
		}
		if err != nil {
			return reward.Snapshot{}, fmt.Errorf("could not read %s: %w", record.key, err)
		}
		err = json.Unmarshal(data, record.value)
		if err != nil {
			return reward.Snapshot{}, fmt.Errorf("could not decode %s: %w", record.key, err)
		}
	}

	snapshot.Accounts = make(map[common.Address]reward.Account)
	it := s.db.NewIterator(util.BytesPrefix(prefixAccount), nil)
	defer it.Release()
	for it.Next() {
		user := common.HexToAddress(string(it.Key()[len(prefixAccount):]))
		var account reward.Account
		err := json.Unmarshal(it.Value(), &account)
		if err != nil {
			return reward.Snapshot{}, fmt.Errorf("could not decode account %s: %w", user, err)
		}
		snapshot.Accounts[user] = account
	}
	err := it.Error()
	if err != nil {
		return reward.Snapshot{}, fmt.Errorf("could not read accounts: %w", err)
	}

	return snapshot, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func accountKey(user common.Address) []byte {
	return append(append([]byte{}, prefixAccount...), user.Hex()...)
}
