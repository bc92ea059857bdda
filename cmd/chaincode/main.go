package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assetmetrics "regnet/internal/asset/metrics"
	"regnet/internal/contract"
	identitymetrics "regnet/internal/identity/metrics"
	"regnet/internal/platform/config"
	"regnet/internal/platform/httpserver"
	"regnet/internal/platform/logger"
	transfermetrics "regnet/internal/transfer/metrics"
)

// main wires the two contracts into a chaincode-as-a-service process and
// runs an ops listener next to it. Business logic lives in the internal
// services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.ChaincodeID == "" {
		log.Fatal("CHAINCODE_ID must be set (peer-assigned package ID)")
	}

	metrics := contract.Metrics{
		Identity: identitymetrics.New(),
		Asset:    assetmetrics.New(),
		Transfer: transfermetrics.New(),
	}

	cc, err := contractapi.NewChaincode(
		contract.NewUsersContract(metrics),
		contract.NewRegistrarContract(metrics),
	)
	if err != nil {
		log.Fatalf("build chaincode: %v", err)
	}

	server := &shim.ChaincodeServer{
		CCID:    cfg.ChaincodeID,
		Address: cfg.ListenAddr,
		CC:      cc,
		TLSProps: shim.TLSProperties{
			Disabled: true, // peer-to-chaincode TLS is terminated by the deployment
		},
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	ops := httpserver.New(cfg.OpsAddr, router)

	errCh := make(chan error, 2)

	go func() {
		log.Printf("chaincode server %s listening on %s", cfg.ChaincodeID, cfg.ListenAddr)
		errCh <- server.Start()
	}()
	go func() {
		log.Printf("ops listener on %s", cfg.OpsAddr)
		if err := ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case <-quit:
	}

	// The peer notices the dropped chaincode connection on its own; only
	// the ops listener needs a graceful stop.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ops.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
