// Package enhance sequences the note enhancement workflows: single-note and
// multi-note AI enhancement with per-item error isolation, pronunciation
// audio generation, and practice sentence generation. Batches are processed
// strictly sequentially and a single note's failure never aborts the run.
package enhance
