package cache

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"strconv"
	"sync"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/solotto/solotto-bot/data"
)

var log = logger.GetOrCreate("cache")

// Store is the local ticket bookkeeping: per-wallet and per-season
// ticket lists plus the season countdown end times, persisted as one
// JSON file. The store is append-only - a recorded ticket is never
// updated or removed - and best-effort: it is not a source of truth,
// only the numbering authority until the ledger grows one.
type Store struct {
	mut  sync.Mutex
	path string

	contents contents
}

type contents struct {
	Wallets    map[string][]*data.Ticket `json:"wallets"`
	Seasons    map[string][]*data.Ticket `json:"seasons"`
	Countdowns map[string]int64          `json:"countdowns"`
}

// NewStore loads the cache file at the given path, starting empty when
// the file is missing or unreadable.
func NewStore(path string) (*Store, error) {
	store := &Store{
		path: path,
		contents: contents{
			Wallets:    make(map[string][]*data.Ticket),
			Seasons:    make(map[string][]*data.Ticket),
			Countdowns: make(map[string]int64),
		},
	}

	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, err
	}

	loaded := contents{}
	if err = json.Unmarshal(bytes, &loaded); err != nil {
		log.Warn("unreadable cache file, starting empty", "path", path, "error", err)
		return store, nil
	}
	if loaded.Wallets != nil {
		store.contents.Wallets = loaded.Wallets
	}
	if loaded.Seasons != nil {
		store.contents.Seasons = loaded.Seasons
	}
	if loaded.Countdowns != nil {
		store.contents.Countdowns = loaded.Countdowns
	}

	return store, nil
}

// Append records tickets under the wallet address.
func (s *Store) Append(wallet string, tickets []*data.Ticket) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.contents.Wallets[wallet] = append(s.contents.Wallets[wallet], tickets...)
	s.persist()
}

// WalletTickets returns a copy of the tickets recorded for a wallet.
func (s *Store) WalletTickets(wallet string) []*data.Ticket {
	s.mut.Lock()
	defer s.mut.Unlock()

	return copyTickets(s.contents.Wallets[wallet])
}

// AppendToSeason records tickets under the season id.
func (s *Store) AppendToSeason(seasonID uint32, tickets []*data.Ticket) {
	s.mut.Lock()
	defer s.mut.Unlock()

	key := seasonKey(seasonID)
	s.contents.Seasons[key] = append(s.contents.Seasons[key], tickets...)
	s.persist()
}

// SeasonTickets returns a copy of the tickets recorded for a season.
func (s *Store) SeasonTickets(seasonID uint32) []*data.Ticket {
	s.mut.Lock()
	defer s.mut.Unlock()

	return copyTickets(s.contents.Seasons[seasonKey(seasonID)])
}

// SetSeasonEndTime remembers the countdown end for a season.
func (s *Store) SetSeasonEndTime(seasonID uint32, end time.Time) {
	s.mut.Lock()
	defer s.mut.Unlock()

	key := seasonKey(seasonID)
	if s.contents.Countdowns[key] == end.Unix() {
		return
	}
	s.contents.Countdowns[key] = end.Unix()
	s.persist()
}

// SeasonEndTime returns the remembered countdown end for a season.
func (s *Store) SeasonEndTime(seasonID uint32) (time.Time, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()

	unix, ok := s.contents.Countdowns[seasonKey(seasonID)]
	if !ok {
		return time.Time{}, false
	}

	return time.Unix(unix, 0), true
}

func (s *Store) persist() {
	bytes, err := json.Marshal(&s.contents)
	if err != nil {
		log.Warn("can not marshal cache contents", "error", err)
		return
	}

	if err = ioutil.WriteFile(s.path, bytes, 0644); err != nil {
		log.Warn("can not write cache file", "path", s.path, "error", err)
	}
}

func copyTickets(tickets []*data.Ticket) []*data.Ticket {
	out := make([]*data.Ticket, len(tickets))
	copy(out, tickets)

	return out
}

func seasonKey(seasonID uint32) string {
	return strconv.FormatUint(uint64(seasonID), 10)
}
