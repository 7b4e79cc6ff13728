package internal

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "chord.Chord"

// ChordServer is the server-side peer protocol: every method a node
// must answer when another peer calls it.
type ChordServer interface {
	GetNodeKey(context.Context, *Empty) (*NodeKeyReply, error)
	GetHashLength(context.Context, *Empty) (*HashLengthReply, error)
	FindSuccessor(context.Context, *IDArg) (*NodeRef, error)
	GetPredecessor(context.Context, *Empty) (*PredecessorReply, error)
	CheckPredecessor(context.Context, *CheckPredecessorArg) (*Empty, error)
	Get(context.Context, *IDArg) (*GetReply, error)
	Put(context.Context, *PutArg) (*Empty, error)
	Delete(context.Context, *IDArg) (*Empty, error)
	PutBackup(context.Context, *PutArg) (*Empty, error)
	RemoveBackup(context.Context, *IDArg) (*Empty, error)
}

// ChordClient is the client-side stub for the same protocol.
type ChordClient interface {
	GetNodeKey(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NodeKeyReply, error)
	GetHashLength(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*HashLengthReply, error)
	FindSuccessor(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*NodeRef, error)
	GetPredecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PredecessorReply, error)
	CheckPredecessor(ctx context.Context, in *CheckPredecessorArg, opts ...grpc.CallOption) (*Empty, error)
	Get(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*GetReply, error)
	Put(ctx context.Context, in *PutArg, opts ...grpc.CallOption) (*Empty, error)
	Delete(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*Empty, error)
	PutBackup(ctx context.Context, in *PutArg, opts ...grpc.CallOption) (*Empty, error)
	RemoveBackup(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*Empty, error)
}

type chordClient struct {
	cc grpc.ClientConnInterface
}

// NewChordClient wraps a dialed connection as a ChordClient.
func NewChordClient(cc grpc.ClientConnInterface) ChordClient {
	return &chordClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *chordClient) GetNodeKey(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NodeKeyReply, error) {
	out := new(NodeKeyReply)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetNodeKey", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) GetHashLength(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*HashLengthReply, error) {
	out := new(HashLengthReply)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetHashLength", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) FindSuccessor(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*NodeRef, error) {
	out := new(NodeRef)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/FindSuccessor", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) GetPredecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PredecessorReply, error) {
	out := new(PredecessorReply)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetPredecessor", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) CheckPredecessor(ctx context.Context, in *CheckPredecessorArg, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CheckPredecessor", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Get(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*GetReply, error) {
	out := new(GetReply)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Get", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Put(ctx context.Context, in *PutArg, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Put", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Delete(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Delete", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) PutBackup(ctx context.Context, in *PutArg, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/PutBackup", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) RemoveBackup(ctx context.Context, in *IDArg, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RemoveBackup", in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Chord_GetNodeKey_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).GetNodeKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetNodeKey"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).GetNodeKey(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_GetHashLength_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).GetHashLength(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetHashLength"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).GetHashLength(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_FindSuccessor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IDArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).FindSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/FindSuccessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).FindSuccessor(ctx, req.(*IDArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_GetPredecessor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).GetPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetPredecessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).GetPredecessor(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_CheckPredecessor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckPredecessorArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).CheckPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/CheckPredecessor"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).CheckPredecessor(ctx, req.(*CheckPredecessorArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IDArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Get(ctx, req.(*IDArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Put(ctx, req.(*PutArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Delete_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IDArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Delete"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Delete(ctx, req.(*IDArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_PutBackup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).PutBackup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/PutBackup"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).PutBackup(ctx, req.(*PutArg))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_RemoveBackup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IDArg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).RemoveBackup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/RemoveBackup"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).RemoveBackup(ctx, req.(*IDArg))
	}
	return interceptor(ctx, in, info, handler)
}

var chordServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChordServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetNodeKey", Handler: _Chord_GetNodeKey_Handler},
		{MethodName: "GetHashLength", Handler: _Chord_GetHashLength_Handler},
		{MethodName: "FindSuccessor", Handler: _Chord_FindSuccessor_Handler},
		{MethodName: "GetPredecessor", Handler: _Chord_GetPredecessor_Handler},
		{MethodName: "CheckPredecessor", Handler: _Chord_CheckPredecessor_Handler},
		{MethodName: "Get", Handler: _Chord_Get_Handler},
		{MethodName: "Put", Handler: _Chord_Put_Handler},
		{MethodName: "Delete", Handler: _Chord_Delete_Handler},
		{MethodName: "PutBackup", Handler: _Chord_PutBackup_Handler},
		{MethodName: "RemoveBackup", Handler: _Chord_RemoveBackup_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chord.proto",
}

// RegisterChordServer binds srv to s under the Chord service
// descriptor.
func RegisterChordServer(s grpc.ServiceRegistrar, srv ChordServer) {
	s.RegisterService(&chordServiceDesc, srv)
}
