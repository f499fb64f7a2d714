package proxy_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-proxy/pkg/future"
	"github.com/mash-protocol/mash-proxy/pkg/metrics"
	"github.com/mash-protocol/mash-proxy/pkg/proxy"
	"github.com/mash-protocol/mash-proxy/pkg/proxy/mocks"
	"github.com/mash-protocol/mash-proxy/pkg/qos"
	"github.com/mash-protocol/mash-proxy/pkg/typing"
)

var provider = proxy.DiscoveryEntry{
	Domain:        "home",
	InterfaceName: "lighting/Lamp",
	ParticipantID: "provider-1",
}

type position struct {
	Latitude  any     `cbor:"latitude"`
	Longitude float64 `cbor:"longitude"`
}

func (*position) TypeName() string { return "geo.Position" }

func newOwner() *proxy.Proxy {
	return &proxy.Proxy{
		ParticipantID: "proxy-1",
		Provider:      provider,
		MessagingQos:  &qos.MessagingQos{TTL: qos.Ptr(30 * time.Second)},
	}
}

func newRegistry(t *testing.T) *typing.Registry {
	t.Helper()
	reg := typing.NewRegistry()
	require.NoError(t, reg.Register(typing.TypeInfo{
		Name: "geo.Position",
		New:  func() any { return &position{} },
		CheckMembers: func(value any, check typing.PropertyChecker) error {
			p := value.(*position)
			return check(p.Latitude, typing.PrimitiveDouble, "latitude")
		},
	}))
	return reg
}

func wait[T any](t *testing.T, f *future.Future[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return f.Wait(ctx)
}

type fixture struct {
	rrm *mocks.MockRequestReplyManager
	sm  *mocks.MockSubscriptionManager
	reg *typing.Registry
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		rrm: mocks.NewMockRequestReplyManager(t),
		sm:  mocks.NewMockSubscriptionManager(t),
		reg: newRegistry(t),
	}
}

func (f *fixture) settings() proxy.Settings {
	return proxy.Settings{
		Dependencies: proxy.Dependencies{
			RequestReplyManager: f.rrm,
			SubscriptionManager: f.sm,
			Registry:            f.reg,
		},
	}
}

func (f *fixture) attribute(t *testing.T, name, typ, caps string) *proxy.Attribute {
	t.Helper()
	a, err := proxy.NewAttribute(newOwner(), f.settings(), proxy.NewAttributeDescriptor(name, typ, caps))
	require.NoError(t, err)
	return a
}

func TestAttributeCapabilityOrder(t *testing.T) {
	for _, caps := range []string{"NOTIFYREADWRITE", "READWRITENOTIFY", "WRITENOTIFYREAD"} {
		t.Run(caps, func(t *testing.T) {
			a := newFixture(t).attribute(t, "isOn", typing.PrimitiveBoolean, caps)

			_, ok := a.Reader()
			assert.True(t, ok)
			_, ok = a.Writer()
			assert.True(t, ok)
			_, ok = a.Notifier()
			assert.True(t, ok)
			assert.Equal(t, proxy.CapNotifyReadWrite, a.Capabilities())
		})
	}
}

func TestAttributeMissingOperations(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "READONLY")

	_, ok := a.Reader()
	assert.True(t, ok)
	_, ok = a.Writer()
	assert.False(t, ok)
	_, ok = a.Notifier()
	assert.False(t, ok)

	_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{Value: true}))
	assert.ErrorIs(t, err, proxy.ErrOperationNotSupported)

	_, err = wait(t, a.Subscribe(context.Background(), proxy.SubscribeSettings{}))
	assert.ErrorIs(t, err, proxy.ErrOperationNotSupported)

	_, err = wait(t, a.Unsubscribe(context.Background(), proxy.UnsubscribeSettings{SubscriptionID: "s"}))
	assert.ErrorIs(t, err, proxy.ErrOperationNotSupported)

	f.rrm.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttributeNoCapabilities(t *testing.T) {
	a, err := proxy.NewAttribute(newOwner(), proxy.Settings{}, proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, ""))
	require.NoError(t, err)

	_, err = wait(t, a.Get(context.Background(), proxy.CallSettings{}))
	assert.ErrorIs(t, err, proxy.ErrOperationNotSupported)
}

func TestNewAttributeMissingDependency(t *testing.T) {
	sm := mocks.NewMockSubscriptionManager(t)
	rrm := mocks.NewMockRequestReplyManager(t)

	tests := []struct {
		name    string
		caps    string
		deps    proxy.Dependencies
		wantErr bool
	}{
		{"read without rrm", "READ", proxy.Dependencies{SubscriptionManager: sm}, true},
		{"write without rrm", "WRITE", proxy.Dependencies{SubscriptionManager: sm}, true},
		{"notify without sm", "NOTIFY", proxy.Dependencies{RequestReplyManager: rrm}, true},
		{"notify only", "NOTIFY", proxy.Dependencies{SubscriptionManager: sm}, false},
		{"read only", "READONLY", proxy.Dependencies{RequestReplyManager: rrm}, false},
		{"nothing", "", proxy.Dependencies{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := proxy.NewAttribute(newOwner(), proxy.Settings{Dependencies: tt.deps},
				proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, tt.caps))
			if tt.wantErr {
				assert.ErrorIs(t, err, proxy.ErrMissingDependency)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttributeGet(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "NOTIFYREADWRITE")

	var sent proxy.SendRequestParams
	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, typing.PrimitiveBoolean).
		Run(func(_ context.Context, params proxy.SendRequestParams, _ string) {
			sent = params
		}).
		Return(future.Resolved([]any{true})).
		Once()

	v, err := wait(t, a.Get(context.Background(), proxy.CallSettings{}))
	require.NoError(t, err)
	assert.Equal(t, true, v)

	require.NotNil(t, sent.Request)
	assert.Equal(t, "getIsOn", sent.Request.MethodName)
	assert.Empty(t, sent.Request.ParamDatatypes)
	assert.Empty(t, sent.Request.Params)
	assert.NotEmpty(t, sent.Request.RequestReplyID)
	assert.Equal(t, provider, sent.To)
	assert.Equal(t, "proxy-1", sent.From)
}

func TestAttributeGetAugment(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		reply   []any
		want    any
		wantErr error
	}{
		{"integer", typing.PrimitiveInt32, []any{uint64(42)}, int32(42), nil},
		{"empty reply", typing.PrimitiveInt32, nil, nil, nil},
		{"nil result", typing.PrimitiveString, []any{nil}, nil, nil},
		{"array", "Integer[]", []any{[]any{uint64(1), int64(-2)}}, []any{int32(1), int32(-2)}, nil},
		{"struct", "geo.Position", []any{map[any]any{"latitude": 1.5, "longitude": 2.5}}, position{Latitude: 1.5, Longitude: 2.5}, nil},
		{"unknown type", "geo.Unknown", []any{"raw"}, "raw", nil},
		{"mismatch", typing.PrimitiveBoolean, []any{"yes"}, nil, typing.ErrAugment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.attribute(t, "value", tt.typ, "READONLY")
			f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, tt.typ).
				Return(future.Resolved(tt.reply)).
				Once()

			v, err := wait(t, a.Get(context.Background(), proxy.CallSettings{}))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestAttributeGetErrorPassThrough(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "READONLY")

	engineErr := errors.New("provider unreachable")
	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
		Return(future.Rejected[[]any](engineErr)).
		Once()

	_, err := wait(t, a.Get(context.Background(), proxy.CallSettings{}))
	assert.Equal(t, engineErr, err)
}

func TestAttributeGetNilFuture(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "READONLY")

	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Once()

	_, err := wait(t, a.Get(context.Background(), proxy.CallSettings{}))
	assert.ErrorIs(t, err, proxy.ErrNoFuture)
}

func TestAttributeSet(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "NOTIFYREADWRITE")

	var sent proxy.SendRequestParams
	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, typing.PrimitiveBoolean).
		Run(func(_ context.Context, params proxy.SendRequestParams, _ string) {
			sent = params
		}).
		Return(future.Resolved[[]any](nil)).
		Once()

	_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{Value: true}))
	require.NoError(t, err)

	require.NotNil(t, sent.Request)
	assert.Equal(t, "setIsOn", sent.Request.MethodName)
	assert.Equal(t, []string{typing.PrimitiveBoolean}, sent.Request.ParamDatatypes)
	assert.Equal(t, []any{true}, sent.Request.Params)
}

func TestAttributeSetValidation(t *testing.T) {
	f := newFixture(t)
	m := metrics.New("test")
	s := f.settings()
	s.Metrics = m

	a, err := proxy.NewAttribute(newOwner(), s, proxy.NewAttributeDescriptor("position", "geo.Position", "READWRITE"))
	require.NoError(t, err)

	t.Run("invalid member", func(t *testing.T) {
		_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{
			Value: &position{Latitude: "north", Longitude: 1},
		}))
		require.Error(t, err)

		var verr *proxy.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "position", verr.Attribute)
		assert.ErrorIs(t, err, proxy.ErrInvalidValue)
		assert.ErrorIs(t, err, typing.ErrTypeMismatch)
		assert.True(t, strings.HasPrefix(err.Error(), "error setting attribute: position: "), err.Error())

		f.rrm.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("position")))
	})

	t.Run("invalid value of registered type", func(t *testing.T) {
		var err error
		assert.NotPanics(t, func() {
			_, err = wait(t, a.Set(context.Background(), proxy.SetSettings{
				Value: position{Latitude: "north"},
			}))
		})
		assert.ErrorIs(t, err, proxy.ErrInvalidValue)
		assert.ErrorIs(t, err, typing.ErrTypeMismatch)
		f.rrm.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil value skips validation", func(t *testing.T) {
		var sent proxy.SendRequestParams
		f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, "geo.Position").
			Run(func(_ context.Context, params proxy.SendRequestParams, _ string) {
				sent = params
			}).
			Return(future.Resolved[[]any](nil)).
			Once()

		var nilPos *position
		_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{Value: nilPos}))
		require.NoError(t, err)
		require.NotNil(t, sent.Request)
		assert.Equal(t, "setPosition", sent.Request.MethodName)
	})

	t.Run("valid value", func(t *testing.T) {
		f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, "geo.Position").
			Return(future.Resolved[[]any](nil)).
			Once()

		_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{
			Value: &position{Latitude: 48.1, Longitude: 11.6},
		}))
		assert.NoError(t, err)
	})

	t.Run("valid value of registered type", func(t *testing.T) {
		f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, "geo.Position").
			Return(future.Resolved[[]any](nil)).
			Once()

		_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{
			Value: position{Latitude: 48.1, Longitude: 11.6},
		}))
		assert.NoError(t, err)
	})
}

func TestAttributeQosPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		settings *qos.MessagingQos
		call     *qos.MessagingQos
		want     qos.MessagingQos
	}{
		{
			name: "owner only",
			want: qos.MessagingQos{
				TTL:      qos.Ptr(30 * time.Second),
				Effort:   qos.Ptr(qos.EffortNormal),
				Encrypt:  qos.Ptr(false),
				Compress: qos.Ptr(false),
			},
		},
		{
			name:     "settings override owner",
			settings: &qos.MessagingQos{TTL: qos.Ptr(20 * time.Second), Compress: qos.Ptr(true)},
			want: qos.MessagingQos{
				TTL:      qos.Ptr(20 * time.Second),
				Effort:   qos.Ptr(qos.EffortNormal),
				Encrypt:  qos.Ptr(false),
				Compress: qos.Ptr(true),
			},
		},
		{
			name:     "call overrides settings",
			settings: &qos.MessagingQos{TTL: qos.Ptr(20 * time.Second), Compress: qos.Ptr(true)},
			call: &qos.MessagingQos{
				TTL:           qos.Ptr(10 * time.Second),
				Effort:        qos.Ptr(qos.EffortBestEffort),
				CustomHeaders: map[string]string{"trace": "abc"},
			},
			want: qos.MessagingQos{
				TTL:           qos.Ptr(10 * time.Second),
				Effort:        qos.Ptr(qos.EffortBestEffort),
				Encrypt:       qos.Ptr(false),
				Compress:      qos.Ptr(true),
				CustomHeaders: map[string]string{"trace": "abc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			s := f.settings()
			s.MessagingQos = tt.settings
			a, err := proxy.NewAttribute(newOwner(), s, proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, "NOTIFYREADWRITE"))
			require.NoError(t, err)

			var sent proxy.SendRequestParams
			f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
				Run(func(_ context.Context, params proxy.SendRequestParams, _ string) {
					sent = params
				}).
				Return(future.Resolved([]any{false})).
				Once()

			_, err = wait(t, a.Get(context.Background(), proxy.CallSettings{MessagingQos: tt.call}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, sent.MessagingQos)

			var unsub proxy.UnsubscribeParams
			f.sm.EXPECT().UnregisterSubscription(mock.Anything, mock.Anything).
				Run(func(_ context.Context, params proxy.UnsubscribeParams) {
					unsub = params
				}).
				Return(future.Resolved(struct{}{})).
				Once()

			_, err = wait(t, a.Unsubscribe(context.Background(), proxy.UnsubscribeSettings{
				MessagingQos:   tt.call,
				SubscriptionID: "sub-1",
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, unsub.MessagingQos)
			assert.Equal(t, "sub-1", unsub.SubscriptionID)
		})
	}
}

func TestAttributeQosLayersNotMutated(t *testing.T) {
	f := newFixture(t)
	owner := newOwner()
	call := &qos.MessagingQos{CustomHeaders: map[string]string{"k": "v"}}

	a, err := proxy.NewAttribute(owner, f.settings(), proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, "READONLY"))
	require.NoError(t, err)

	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, params proxy.SendRequestParams, _ string) {
			params.MessagingQos.CustomHeaders["k"] = "changed"
			*params.MessagingQos.TTL = time.Hour
		}).
		Return(future.Resolved([]any{true})).
		Once()

	_, err = wait(t, a.Get(context.Background(), proxy.CallSettings{MessagingQos: call}))
	require.NoError(t, err)
	assert.Equal(t, "v", call.CustomHeaders["k"])
	assert.Equal(t, 30*time.Second, *owner.MessagingQos.TTL)
}

func TestAttributeSubscribe(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "NOTIFYREADONLY")

	subQos := &qos.SubscriptionQos{
		MinInterval: 100 * time.Millisecond,
		MaxInterval: time.Second,
	}
	var received []any

	f.sm.EXPECT().RegisterSubscription(mock.Anything, mock.MatchedBy(func(req proxy.SubscriptionRequest) bool {
		return req.ProxyID == "proxy-1" &&
			req.Provider == provider &&
			req.AttributeName == "isOn" &&
			req.AttributeType == typing.PrimitiveBoolean &&
			req.Qos == subQos &&
			req.SubscriptionID == "sub-1"
	})).
		Run(func(_ context.Context, req proxy.SubscriptionRequest) {
			req.OnReceive(true)
			req.OnSubscribed("sub-1")
		}).
		Return(future.Resolved("sub-1")).
		Once()

	var subscribed string
	id, err := wait(t, a.Subscribe(context.Background(), proxy.SubscribeSettings{
		SubscriptionQos: subQos,
		SubscriptionID:  "sub-1",
		OnReceive:       func(v any) { received = append(received, v) },
		OnSubscribed:    func(id string) { subscribed = id },
	}))
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id)
	assert.Equal(t, []any{true}, received)
	assert.Equal(t, "sub-1", subscribed)
}

func TestAttributeSubscribeError(t *testing.T) {
	f := newFixture(t)
	m := metrics.New("test")
	s := f.settings()
	s.Metrics = m
	a, err := proxy.NewAttribute(newOwner(), s, proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, "NOTIFY"))
	require.NoError(t, err)

	engineErr := fmt.Errorf("subscription rejected")
	f.sm.EXPECT().RegisterSubscription(mock.Anything, mock.Anything).
		Return(future.Rejected[string](engineErr)).
		Once()

	_, err = wait(t, a.Subscribe(context.Background(), proxy.SubscribeSettings{}))
	assert.Equal(t, engineErr, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.Subscriptions.WithLabelValues("isOn", metrics.OpSubscribe, metrics.OutcomeError)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAttributeRequestMetrics(t *testing.T) {
	f := newFixture(t)
	m := metrics.New("test")
	s := f.settings()
	s.Metrics = m
	a, err := proxy.NewAttribute(newOwner(), s, proxy.NewAttributeDescriptor("isOn", typing.PrimitiveBoolean, "READWRITE"))
	require.NoError(t, err)

	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
		Return(future.Resolved([]any{true})).
		Once()

	_, err = wait(t, a.Get(context.Background(), proxy.CallSettings{}))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.Requests.WithLabelValues("getIsOn", metrics.OutcomeSuccess)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAttributeSetErrorPassThrough(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "READWRITE")

	engineErr := errors.New("provider rejected write")
	f.rrm.EXPECT().SendRequest(mock.Anything, mock.Anything, mock.Anything).
		Return(future.Rejected[[]any](engineErr)).
		Once()

	_, err := wait(t, a.Set(context.Background(), proxy.SetSettings{Value: true}))
	assert.Equal(t, engineErr, err)
}

func TestAttributeUnsubscribeErrorPassThrough(t *testing.T) {
	f := newFixture(t)
	a := f.attribute(t, "isOn", typing.PrimitiveBoolean, "NOTIFY")

	engineErr := errors.New("unknown subscription")
	f.sm.EXPECT().UnregisterSubscription(mock.Anything, mock.Anything).
		Return(future.Rejected[struct{}](engineErr)).
		Once()

	_, err := wait(t, a.Unsubscribe(context.Background(), proxy.UnsubscribeSettings{SubscriptionID: "sub-1"}))
	assert.Equal(t, engineErr, err)
}
