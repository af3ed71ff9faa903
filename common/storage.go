package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Storage tiers. Neo contract storage is uniformly durable, so tiers are
// realized as disjoint key namespaces: a record's tier prefix decides
// whether Clear may erase it. Callers pick the tier explicitly on every
// read and write.
const (
	// TierEphemeral holds scratch records that any maintenance routine
	// may drop at will.
	TierEphemeral byte = 'e'
	// TierPrunable holds long-lived records that survive normal operation
	// but may be erased wholesale by an administrative prune.
	TierPrunable byte = 'p'
	// TierDurable holds records that must never be dropped outside an
	// explicit per-record delete.
	TierDurable byte = 'd'
)

// ErrTierImmutable is thrown on an attempt to Clear the durable tier.
const ErrTierImmutable = "durable tier cannot be cleared"

func tierKey(tier byte, key []byte) []byte {
	return append([]byte{tier}, key...)
}

// TierGet reads a raw value from the given storage tier. Missing keys
// yield nil, callers decide whether that is fatal.
func TierGet(ctx storage.Context, tier byte, key []byte) any {
	return storage.Get(ctx, tierKey(tier, key))
}

// TierPut writes a raw value into the given storage tier.
func TierPut(ctx storage.Context, tier byte, key []byte, value any) bool {
	storage.Put(ctx, tierKey(tier, key), value)
	return true
}

// TierDelete drops a single record from the given storage tier.
func TierDelete(ctx storage.Context, tier byte, key []byte) {
	storage.Delete(ctx, tierKey(tier, key))
}

// GetSerialized reads a structured record from the given tier. Returns nil
// when the record is absent.
func GetSerialized(ctx storage.Context, tier byte, key []byte) any {
	data := TierGet(ctx, tier, key)
	if data == nil {
		return nil
	}
	return std.Deserialize(data.([]byte))
}

// PutSerialized serializes a structured record and writes it into the
// given tier.
func PutSerialized(ctx storage.Context, tier byte, key []byte, value any) bool {
	return TierPut(ctx, tier, key, std.Serialize(value))
}

// Clear erases every record of a non-durable tier. Panics with
// ErrTierImmutable for TierDurable.
func Clear(ctx storage.Context, tier byte) {
	if tier == TierDurable {
		panic(ErrTierImmutable)
	}

	it := storage.Find(ctx, []byte{tier}, storage.KeysOnly)
	for iterator.Next(it) {
		storage.Delete(ctx, iterator.Value(it).([]byte))
	}
}
