package main

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/lab2439/uuid"
)

// Segment represents a leased range of sequence numbers usable by this minter.
// Base: Start of the range (exclusive).
// Max: End of the range (inclusive).
// Step: The range size.
// Cursor: The current position in the range.
type Segment struct {
	Base   int64 // exclusive (the last granted sequence)
	Max    int64 // inclusive (max usable sequence)
	Step   int   // step size for segment
	Cursor int64 // current position, accessed atomically
}

// NewSegment creates a new sequence segment, starting at base, ending at max, with a given step.
func NewSegment(base, max int64, step int) *Segment {
	return &Segment{
		Base:   base,
		Max:    max,
		Step:   step,
		Cursor: base,
	}
}

// Remaining returns how many sequence numbers are left in the current segment.
func (s *Segment) Remaining() int64 {
	cur := atomic.LoadInt64(&s.Cursor)
	return s.Max - cur
}

// DoubleBuffer orchestrates two Segments - current (in use) and next (being prefetched).
// Implements double buffer prefetching strategy for sequence segments.
type DoubleBuffer struct {
	tag string

	current *Segment // currently served segment
	next    *Segment // prefetched next segment

	nextReady bool       // true if next segment ready to be used
	isLoading int32      // atomic flag for ongoing loading goroutine
	mu        sync.Mutex // protects buffer/switch logic

	dao *AllocDAO // database access object
}

// NewDoubleBuffer constructs a double buffer for given tag with DB DAO injected.
func NewDoubleBuffer(tag string, dao *AllocDAO) *DoubleBuffer {
	return &DoubleBuffer{
		tag: tag,
		dao: dao,
	}
}

// Init loads the very first segment for this DoubleBuffer.
func (db *DoubleBuffer) Init() error {
	seg, err := db.dao.FetchNextSegment(db.tag)
	if err != nil {
		return err
	}
	db.current = seg
	return nil
}

// NextSequence atomically allocates and returns the next sequence number in the buffer,
// refilling or switching segments if needed. Ensures thread safety and minimal DB blocking.
func (db *DoubleBuffer) NextSequence() (int64, error) {
	if db.current == nil {
		return 0, errors.New("segment not initialized")
	}

	// Fast path: try to increment Cursor for current segment
	seq := atomic.AddInt64(&db.current.Cursor, 1)

	// If still within the current segment range
	if seq <= db.current.Max {
		db.CheckAndLoadNext() // try to prefetch asynchronously if running low
		return seq, nil
	}

	// Slow path: segment may be exhausted. Need to lock and switch segment if possible.
	db.mu.Lock()
	defer db.mu.Unlock()

	// Double-check in case another goroutine already advanced the cursor while we waited for the lock
	if seq := atomic.AddInt64(&db.current.Cursor, 1); seq <= db.current.Max {
		return seq, nil
	}

	// If the next buffer is ready, switch
	if db.nextReady && db.next != nil {
		db.current = db.next
		db.next = nil
		db.nextReady = false

		seq := atomic.AddInt64(&db.current.Cursor, 1)
		return seq, nil
	}

	// Neither buffer is ready. Synchronously fetch new segment from DB (fallback mode)
	seg, err := db.dao.FetchNextSegment(db.tag)
	if err != nil {
		return 0, err
	}

	db.current = seg
	db.next = nil
	db.nextReady = false
	seq = atomic.AddInt64(&db.current.Cursor, 1)
	return seq, nil
}

// CheckAndLoadNext triggers asynchronous prefetching of the next segment when the current one is running low.
// Only one goroutine can trigger load at a time (CAS protected).
func (db *DoubleBuffer) CheckAndLoadNext() {
	// If next buffer is already ready or loading is in progress, return early.
	if db.nextReady || atomic.LoadInt32(&db.isLoading) == 1 {
		return
	}

	// Prefetch threshold: when only 20% of the segment is left, fire refetch.
	threshold := int64(float64(db.current.Step) * 0.2)
	if db.current.Remaining() > threshold {
		return
	}

	// Set isLoading=1 and start a goroutine to prefetch the next segment
	if atomic.CompareAndSwapInt32(&db.isLoading, 0, 1) {
		go func() {
			defer atomic.StoreInt32(&db.isLoading, 0) // always reset loading flag

			seg, err := db.dao.FetchNextSegment(db.tag)
			if err != nil {
				return
			}

			// Lock before writing to .next
			db.mu.Lock()
			db.next = seg
			db.nextReady = true
			db.mu.Unlock()
		}()
	}
}

// AllocDAO encapsulates all database operations, such as segment allocation.
type AllocDAO struct {
	db *sql.DB
}

// NewAllocDAO creates a new DAO with provided database DSN.
func NewAllocDAO(dsn string) (*AllocDAO, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// DB performance and safety tuning
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &AllocDAO{
		db: db,
	}, nil
}

// FetchNextSegment allocates a new segment from the database for the given tag, using a transaction.
// This SQL pattern guarantees atomic step/reservation for this caller.
func (dao *AllocDAO) FetchNextSegment(tag string) (*Segment, error) {
	tx, err := dao.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Step 1: Atomically reserve a range of sequence numbers by updating max_seq
	_, err = tx.ExecContext(context.Background(),
		"UPDATE uuid_alloc SET max_seq = max_seq + step WHERE tag = ?", tag)
	if err != nil {
		return nil, err
	}

	// Step 2: Read back the new max_seq, together with step
	var maxSeq int64
	var step int
	err = tx.QueryRowContext(context.Background(),
		"SELECT max_seq, step FROM uuid_alloc WHERE tag = ?", tag).Scan(&maxSeq, &step)
	if err != nil {
		return nil, err
	}

	// Commit transaction
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// Construct a Segment: [maxSeq-step, maxSeq]
	return &Segment{
		Base:   maxSeq - int64(step),
		Max:    maxSeq,
		Step:   step,
		Cursor: maxSeq - int64(step), // Cursor always starts at Base
	}, nil
}

// MintServer manages DoubleBuffers for each tag and mints the leased sequence
// numbers as version 8 UUIDs.
type MintServer struct {
	dao     *AllocDAO
	buffers map[string]*DoubleBuffer // per-tag segment double buffer
	mu      sync.RWMutex             // reads/writes to buffers map protected
}

// NewMintServer creates a new MintServer with given DB connection string.
func NewMintServer(dsn string) (*MintServer, error) {
	dao, err := NewAllocDAO(dsn)
	if err != nil {
		return nil, err
	}

	return &MintServer{
		dao:     dao,
		buffers: make(map[string]*DoubleBuffer),
	}, nil
}

// mintUUID packs a tag fingerprint and a sequence number into a v8 UUID.
// Bytes 0-7 carry the fingerprint (the version nibble lands inside it and is
// overwritten), bytes 8-15 carry the sequence. Sequences stay below 2^62 so
// the variant bits never clip them.
func mintUUID(tag string, seq int64) uuid.UUID {
	fingerprint := uuid.NewV5(uuid.NamespaceOID, []byte(tag))

	var data [16]byte
	copy(data[0:8], fingerprint.Bytes()[:8])
	binary.BigEndian.PutUint64(data[8:16], uint64(seq))
	return uuid.NewV8(data)
}

// GetUUID returns the next unique v8 UUID for the chosen tag.
// Instantiates new DoubleBuffer if required. Thread safe.
func (s *MintServer) GetUUID(tag string) (uuid.UUID, error) {
	// Fast path with read lock: check if buffer exists.
	s.mu.RLock()
	buf, ok := s.buffers[tag]
	s.mu.RUnlock()

	if ok {
		seq, err := buf.NextSequence()
		if err != nil {
			return uuid.Nil, err
		}
		return mintUUID(tag, seq), nil
	}

	// Fallback: allocate new DoubleBuffer (write lock required).
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double check in case another goroutine created the buffer in between locks.
	buf, ok = s.buffers[tag]
	if !ok {
		buf = NewDoubleBuffer(tag, s.dao)
		if err := buf.Init(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to initialize double buffer: %w", err)
		}
		s.buffers[tag] = buf
	}

	seq, err := buf.NextSequence()
	if err != nil {
		return uuid.Nil, err
	}
	return mintUUID(tag, seq), nil
}

func main() {
	// Please modify this DSN with your real DB credentials before use.
	dsn := "lzww:123456@tcp(127.0.0.1:3306)/test_db?parseTime=true"

	server, err := NewMintServer(dsn)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("UUID Mint Server Started...")

	var wg sync.WaitGroup
	start := time.Now()

	// Simulate 10 concurrent goroutines, each acquiring 500 UUIDs
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				id, err := server.GetUUID("order-service")
				if err != nil {
					log.Printf("Error: %v", err)
					continue
				}
				_ = id
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)
	log.Printf("Total time: %s, Finish minting 5000 UUIDs", elapsed)
}
