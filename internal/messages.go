// Package internal holds the wire types and gRPC service binding for
// the peer protocol. There is no .proto/protoc step here; see codec.go
// for why.
package internal

// Empty is sent where an RPC carries no arguments.
type Empty struct{}

// NodeRef is how a RemoteNode handle crosses the wire: an address plus
// the identifier the receiving side can use immediately, without a
// further round trip.
type NodeRef struct {
	Key  uint64
	Addr string
}

// IDArg carries a single ring identifier argument.
type IDArg struct {
	Id uint64
}

// NodeKeyReply answers getNodeKey.
type NodeKeyReply struct {
	Key uint64
}

// HashLengthReply answers getHashLength.
type HashLengthReply struct {
	M uint32
}

// PredecessorReply answers getPredecessor. Has is false when the
// predecessor is unknown.
type PredecessorReply struct {
	Has  bool
	Node NodeRef
}

// CheckPredecessorArg carries the candidate volunteering as
// predecessor.
type CheckPredecessorArg struct {
	Candidate NodeRef
}

// GetReply answers get. Found is false when the key is absent.
type GetReply struct {
	Found bool
	Value []byte
}

// PutArg carries a key/value pair for put or putBackup.
type PutArg struct {
	Id    uint64
	Value []byte
}
