// Package maldata prepares serialized byte-sequence feature vectors for a
// binary malware/benign classifier.
//
// It maps two label-partitioned sample collections (benign, malware) into a
// single index-addressed dataset, splits the index space into stratified
// train/validation/test subsets, and collates variable-length samples into
// fixed-width padded batches ready for model consumption.
//
// # Quick Start
//
// Local directories of pickled samples:
//
//	ctx := context.Background()
//	loaders, _ := maldata.MakeLoaders(ctx, "./raw/benign", "./raw/malware",
//	    maldata.WithBatchSize(64),
//	    maldata.WithFractions(0.1, 0.2), // val, test
//	    maldata.WithSeed(42),
//	)
//
//	for batch, err := range loaders.Train.Batches(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    step(batch.Data, batch.Labels)
//	}
//
// Object storage instead of local directories:
//
//	benign, _ := s3.New(ctx, "my-corpus", "benign/")
//	malware, _ := s3.New(ctx, "my-corpus", "malware/")
//	loaders, _ := maldata.MakeLoaders(ctx, "", "",
//	    maldata.WithStores(benign, malware),
//	)
//
// Pre-separated holdout sets get their own loader instead of a burned-in
// path:
//
//	holdout, _ := maldata.HoldoutLoader(ctx, "./raw/holdout/malware", true)
//
// # Error contract
//
// Invalid configuration (fractions summing to >= 1, non-positive batch size
// or batch width) fails at construction with a *ConfigError. Missing,
// unreadable or malformed sample files fail at access time with a
// *dataset.DataError carried by the batch iterator. Out-of-range index
// access yields a *dataset.IndexError.
package maldata
