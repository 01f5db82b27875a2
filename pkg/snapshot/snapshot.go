package snapshot

import (
	"os"
	"strconv"
	"time"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/scottcagno/hashtable"
	"github.com/scottcagno/hashtable/pkg/hashmap"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	bucketMeta    = "meta"
	bucketEntries = "entries"

	keyCount      = "count"
	keyCapacity   = "capacity"
	keyCompressed = "compressed"

	// bolt rejects empty keys, so every entry key carries a marker byte
	entryPrefix = 'e'
)

var (
	ErrNoSnapshot = errors.New("snapshot: no snapshot found")
	ErrCorrupt    = errors.New("snapshot: corrupt snapshot")
)

// default options
var defaultOptions = Options{
	Compress: false,
	Timeout:  time.Second,
}

// Options controls how a snapshot is written and read
type Options struct {
	Compress bool          // snappy encode values
	Timeout  time.Duration // how long to wait for the file lock
	Logger   *zap.Logger   // logger
}

func checkOptions(opts *Options) *Options {
	if opts == nil {
		opts = &defaultOptions
	}
	o := *opts
	if o.Timeout <= 0 {
		o.Timeout = defaultOptions.Timeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &o
}

// Meta describes a saved snapshot
type Meta struct {
	Count      int  // number of entries written
	Capacity   int  // capacity of the table at save time
	Compressed bool // values are snappy encoded
}

// Save writes every entry of d to the bolt file at path, replacing any
// snapshot already stored there
func Save[V any](path string, d hashtable.Dictionary[V], codec Codec[V], opts *Options) error {
	opts = checkOptions(opts)
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return errors.Wrap(err, "snapshot: open")
	}
	defer db.Close()

	meta := Meta{Capacity: d.Cap(), Compressed: opts.Compress}
	err = db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketEntries)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucketEntries))
		if err != nil {
			return err
		}
		var rerr error
		d.Range(func(key string, val V) bool {
			var data []byte
			data, rerr = codec.Marshal(val)
			if rerr != nil {
				rerr = errors.Wrapf(rerr, "snapshot: marshal %q", key)
				return false
			}
			if opts.Compress {
				data = snappy.Encode(nil, data)
			}
			if rerr = b.Put(entryKey(key), data); rerr != nil {
				return false
			}
			meta.Count++
			return true
		})
		if rerr != nil {
			return rerr
		}
		return putMeta(tx, meta)
	})
	if err != nil {
		return errors.Wrap(err, "snapshot: save")
	}
	opts.Logger.Info("snapshot saved",
		zap.String("path", path),
		zap.Int("entries", meta.Count),
		zap.Int("capacity", meta.Capacity),
		zap.Bool("compressed", meta.Compressed),
	)
	return nil
}

// Restore sets every entry stored in the snapshot at path into d and
// returns how many were restored. If the snapshot cannot be read in full
// d is left as it was.
func Restore[V any](path string, d hashtable.Dictionary[V], codec Codec[V], opts *Options) (int, error) {
	opts = checkOptions(opts)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrapf(ErrNoSnapshot, "%s", path)
		}
		return 0, errors.Wrap(err, "snapshot: stat")
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: opts.Timeout, ReadOnly: true})
	if err != nil {
		return 0, errors.Wrap(err, "snapshot: open")
	}
	defer db.Close()

	// d is only touched once the whole snapshot has decoded
	var staged []hashmap.Entry[V]
	var meta Meta
	err = db.View(func(tx *bolt.Tx) error {
		if meta, err = getMeta(tx); err != nil {
			return err
		}
		b := tx.Bucket([]byte(bucketEntries))
		if b == nil {
			return ErrNoSnapshot
		}
		staged = make([]hashmap.Entry[V], 0, meta.Count)
		err := b.ForEach(func(k, v []byte) error {
			if len(k) < 1 || k[0] != entryPrefix {
				return errors.Wrapf(ErrCorrupt, "key %q", k)
			}
			k = k[1:]
			if meta.Compressed {
				dec, err := snappy.Decode(nil, v)
				if err != nil {
					return errors.Wrapf(ErrCorrupt, "key %q: %v", k, err)
				}
				v = dec
			}
			val, err := codec.Unmarshal(v)
			if err != nil {
				return errors.Wrapf(err, "snapshot: unmarshal %q", k)
			}
			staged = append(staged, hashmap.Entry[V]{Key: string(k), Value: val})
			return nil
		})
		if err != nil {
			return err
		}
		if len(staged) != meta.Count {
			return errors.Wrapf(ErrCorrupt, "found %d entries, meta says %d", len(staged), meta.Count)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "snapshot: restore")
	}
	for _, e := range staged {
		d.Set(e.Key, e.Value)
	}
	n := len(staged)
	opts.Logger.Info("snapshot restored",
		zap.String("path", path),
		zap.Int("entries", n),
		zap.Int("saved_capacity", meta.Capacity),
		zap.Int("capacity", d.Cap()),
	)
	return n, nil
}

// ReadMeta returns the meta record of the snapshot at path
func ReadMeta(path string, opts *Options) (Meta, error) {
	opts = checkOptions(opts)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Meta{}, errors.Wrapf(ErrNoSnapshot, "%s", path)
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: opts.Timeout, ReadOnly: true})
	if err != nil {
		return Meta{}, errors.Wrap(err, "snapshot: open")
	}
	defer db.Close()
	var meta Meta
	err = db.View(func(tx *bolt.Tx) error {
		meta, err = getMeta(tx)
		return err
	})
	return meta, err
}

func entryKey(key string) []byte {
	k := make([]byte, 0, len(key)+1)
	k = append(k, entryPrefix)
	return append(k, key...)
}

func putMeta(tx *bolt.Tx, meta Meta) error {
	b, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
	if err != nil {
		return err
	}
	if err := b.Put([]byte(keyCount), []byte(strconv.Itoa(meta.Count))); err != nil {
		return err
	}
	if err := b.Put([]byte(keyCapacity), []byte(strconv.Itoa(meta.Capacity))); err != nil {
		return err
	}
	return b.Put([]byte(keyCompressed), []byte(strconv.FormatBool(meta.Compressed)))
}

func getMeta(tx *bolt.Tx) (Meta, error) {
	var meta Meta
	b := tx.Bucket([]byte(bucketMeta))
	if b == nil {
		return meta, ErrNoSnapshot
	}
	var err error
	if meta.Count, err = strconv.Atoi(string(b.Get([]byte(keyCount)))); err != nil {
		return meta, errors.Wrapf(ErrCorrupt, "count: %v", err)
	}
	if meta.Capacity, err = strconv.Atoi(string(b.Get([]byte(keyCapacity)))); err != nil {
		return meta, errors.Wrapf(ErrCorrupt, "capacity: %v", err)
	}
	if meta.Compressed, err = strconv.ParseBool(string(b.Get([]byte(keyCompressed)))); err != nil {
		return meta, errors.Wrapf(ErrCorrupt, "compressed: %v", err)
	}
	return meta, nil
}
