package report

import "time"

// RecordStore последний загруженный список записей. Заменяется целиком.
type RecordStore struct {
	period    Period
	records   []MaterialRecord
	fetchedAt time.Time
	loaded    bool
}

func (s *RecordStore) Replace(p Period, records []MaterialRecord, at time.Time) {
	s.period = p
	s.records = records
	s.fetchedAt = at
	s.loaded = true
}

func (s *RecordStore) Records() []MaterialRecord { return s.records }
func (s *RecordStore) Period() Period            { return s.period }
func (s *RecordStore) FetchedAt() time.Time      { return s.fetchedAt }
func (s *RecordStore) Loaded() bool              { return s.loaded }
