package service

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/models"
)

// SplitServiceName is the fully-qualified name of the SplitService.
const SplitServiceName = "splitbill.v1.SplitService"

// Procedure paths of the SplitService RPCs.
const (
	SplitServiceSplitBillProcedure    = "/" + SplitServiceName + "/SplitBill"
	SplitServiceFormatDateProcedure   = "/" + SplitServiceName + "/FormatDate"
	SplitServiceCalculateTipProcedure = "/" + SplitServiceName + "/CalculateTip"
)

// jsonCodec carries plain Go structs as JSON. Connect's built-in JSON codec
// only handles protobuf messages, so the service registers this one under
// the same name.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// NewSplitServiceHandler builds an HTTP handler serving every SplitService
// procedure. It returns the path to mount the handler on.
func NewSplitServiceHandler(svc *SplitService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	splitBill := connect.NewUnaryHandler(SplitServiceSplitBillProcedure, svc.SplitBill, opts...)
	formatDate := connect.NewUnaryHandler(SplitServiceFormatDateProcedure, svc.FormatDate, opts...)
	calculateTip := connect.NewUnaryHandler(SplitServiceCalculateTipProcedure, svc.CalculateTip, opts...)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceSplitBillProcedure:
			splitBill.ServeHTTP(w, r)
		case SplitServiceFormatDateProcedure:
			formatDate.ServeHTTP(w, r)
		case SplitServiceCalculateTipProcedure:
			calculateTip.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient struct {
	splitBill    *connect.Client[models.BillInput, models.BillOutput]
	formatDate   *connect.Client[FormatDateRequest, FormatDateResponse]
	calculateTip *connect.Client[CalculateTipRequest, CalculateTipResponse]
}

// NewSplitServiceClient constructs a client for the SplitService served at
// baseURL (e.g. "http://localhost:8080").
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SplitServiceClient{
		splitBill:    connect.NewClient[models.BillInput, models.BillOutput](httpClient, baseURL+SplitServiceSplitBillProcedure, opts...),
		formatDate:   connect.NewClient[FormatDateRequest, FormatDateResponse](httpClient, baseURL+SplitServiceFormatDateProcedure, opts...),
		calculateTip: connect.NewClient[CalculateTipRequest, CalculateTipResponse](httpClient, baseURL+SplitServiceCalculateTipProcedure, opts...),
	}
}

// SplitBill calls splitbill.v1.SplitService.SplitBill.
func (c *SplitServiceClient) SplitBill(ctx context.Context, req *connect.Request[models.BillInput]) (*connect.Response[models.BillOutput], error) {
	return c.splitBill.CallUnary(ctx, req)
}

// FormatDate calls splitbill.v1.SplitService.FormatDate.
func (c *SplitServiceClient) FormatDate(ctx context.Context, req *connect.Request[FormatDateRequest]) (*connect.Response[FormatDateResponse], error) {
	return c.formatDate.CallUnary(ctx, req)
}

// CalculateTip calls splitbill.v1.SplitService.CalculateTip.
func (c *SplitServiceClient) CalculateTip(ctx context.Context, req *connect.Request[CalculateTipRequest]) (*connect.Response[CalculateTipResponse], error) {
	return c.calculateTip.CallUnary(ctx, req)
}
