// Package ranenv orchestrates end-to-end tests of a simulated cellular
// network made of UEs, a base-station and a core-network, each running as
// a remote agent.
//
// An Orchestrator sequences the lifecycle of one Network: subscribers are
// registered, the core-network and base-station are started, UEs are
// started and attached, traffic is exercised and every entity is stopped
// and checked. Per-UE work runs concurrently; a failure on one UE never
// hides the outcome of the others.
//
// # Basic Usage
//
//	import "github.com/giantswarm/ranenv"
//
//	ctx := context.Background()
//
//	conn, err := ranenv.Dial(ctx, ranenv.DialConfig{Target: "dns:///ue-1.lab:50051"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//	// ... dial the base-station and core-network agents the same way
//
//	net := ranenv.Network{
//	    UEs:         []ranenv.UE{ranenv.NewRemoteUE(conn, "ue-1")},
//	    BaseStation: ranenv.NewRemoteBaseStation(gnbConn, "gnb"),
//	    Core:        ranenv.NewRemoteCoreNetwork(coreConn, "core"),
//	}
//
//	orch := ranenv.NewOrchestrator(ranenv.WithAttachTimeout(90 * time.Second))
//	flag := ranenv.NewArtifactFlag()
//
//	err = orch.Run(ctx, net, ranenv.StartOptions{}, flag, ranenv.DefaultStopOptions(),
//	    func(ctx context.Context, attached ranenv.AttachMap) error {
//	        if err := orch.Ping(ctx, attached, net.Core, 5); err != nil {
//	            return err
//	        }
//	        return orch.Throughput(ctx, attached, net.Core, ranenv.TrafficSpec{
//	            Protocol:       ranenv.UDP,
//	            Direction:      ranenv.Bidirectional,
//	            Duration:       10 * time.Second,
//	            Bitrate:        50_000_000,
//	            ThresholdRatio: 0.8,
//	        })
//	    })
//
// Run always stops the network, even when ctx is cancelled, so no entity
// is left running.
//
// # Failure Reports
//
// Ping, Throughput and Stop aggregate every failing UE or entity into a
// single *Report. Match the failure class with errors.Is against
// ErrPingFailed, ErrThroughputFailed, ErrStopFailed or ErrResidualMetrics,
// and use errors.As to reach the individual messages.
//
// # Artifacts
//
// Stop raises one artifact capture request per failing entity on the
// ArtifactSink passed to it. NewArtifactFlag keeps requests in memory;
// OpenArtifactLedger also persists them to a SQLite database shared by
// every run using the same directory.
package ranenv
