package state

import (
	"encoding/binary"
	"fmt"
	"net"

	bolt "go.etcd.io/bbolt"
)

type BoltStore struct {
	db *bolt.DB
}

var ifaceBucket = []byte("interfaces")

func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ifaceBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(ifname string, rec *Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(ifaceBucket)
		data, err := serializeRecord(rec)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(ifname), data)
	})
}

func (s *BoltStore) Load(ifname string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(ifaceBucket)
		if bkt == nil {
			return nil
		}

		data := bkt.Get([]byte(ifname))
		if data == nil {
			return nil
		}

		r, err := deserializeRecord(data)
		if err != nil {
			return err
		}

		rec = r
		return nil
	})
	return rec, err
}

func (s *BoltStore) Delete(ifname string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(ifaceBucket)
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(ifname))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func serializeRecord(rec *Record) ([]byte, error) {
	out := make([]byte, 14+12*len(rec.Routes))

	copy(out[0:4], ip4(rec.Address))
	copy(out[4:8], ip4(rec.Netmask))
	binary.BigEndian.PutUint32(out[8:12], uint32(rec.MTU))
	if len(rec.Routes) > 0xffff {
		return nil, fmt.Errorf("too many routes to serialize: %d", len(rec.Routes))
	}
	binary.BigEndian.PutUint16(out[12:14], uint16(len(rec.Routes)))

	off := 14
	for _, r := range rec.Routes {
		copy(out[off:off+4], ip4(r.Destination))
		copy(out[off+4:off+8], ip4(r.Netmask))
		copy(out[off+8:off+12], ip4(r.Gateway))
		off += 12
	}

	return out, nil
}

func deserializeRecord(data []byte) (*Record, error) {
	if len(data) < 14 {
		return nil, fmt.Errorf("invalid data length for record, want >=14, got %d", len(data))
	}

	rec := &Record{
		Address: net.IPv4(data[0], data[1], data[2], data[3]),
		Netmask: net.IPv4(data[4], data[5], data[6], data[7]),
		MTU:     int(binary.BigEndian.Uint32(data[8:12])),
	}

	n := int(binary.BigEndian.Uint16(data[12:14]))
	if len(data) < 14+12*n {
		return nil, fmt.Errorf("truncated route list, want %d routes in %d bytes", n, len(data)-14)
	}

	off := 14
	for i := 0; i < n; i++ {
		rec.Routes = append(rec.Routes, Route{
			Destination: net.IPv4(data[off], data[off+1], data[off+2], data[off+3]),
			Netmask:     net.IPv4(data[off+4], data[off+5], data[off+6], data[off+7]),
			Gateway:     net.IPv4(data[off+8], data[off+9], data[off+10], data[off+11]),
		})
		off += 12
	}

	return rec, nil
}

func ip4(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return net.IPv4zero.To4()
}
