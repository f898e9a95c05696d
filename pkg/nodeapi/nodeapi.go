// Package nodeapi defines the ClusterNode control service. Messages are
// protobuf well-known types, so no generated code is needed: state travels
// as a google.protobuf.Struct and the running flag as a BoolValue.
package nodeapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "vanet.node.v1.ClusterNode"

	GetStateMethod = "/" + ServiceName + "/GetState"
	StartMethod    = "/" + ServiceName + "/Start"
	StopMethod     = "/" + ServiceName + "/Stop"
)

// ClusterNodeServer is the server API for the ClusterNode service.
type ClusterNodeServer interface {
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Start(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	Stop(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
}

// RegisterClusterNodeServer registers srv on s.
func RegisterClusterNodeServer(s grpc.ServiceRegistrar, srv ClusterNodeServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the ClusterNode service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClusterNodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetState", Handler: getStateHandler},
		{MethodName: "Start", Handler: startHandler},
		{MethodName: "Stop", Handler: stopHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vanet/node/v1/node.proto",
}

func getStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterNodeServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClusterNodeServer).GetState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func startHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterNodeServer).Start(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StartMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClusterNodeServer).Start(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func stopHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterNodeServer).Stop(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StopMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClusterNodeServer).Stop(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ClusterNodeClient is the client API for the ClusterNode service.
type ClusterNodeClient interface {
	GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Start(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Stop(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type clusterNodeClient struct {
	cc grpc.ClientConnInterface
}

func NewClusterNodeClient(cc grpc.ClientConnInterface) ClusterNodeClient {
	return &clusterNodeClient{cc: cc}
}

func (c *clusterNodeClient) GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetStateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clusterNodeClient) Start(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, StartMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clusterNodeClient) Stop(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, StopMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
