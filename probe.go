// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audiofile/audio"
)

// ProbeAll opens every path concurrently and returns the stream info of
// each, in the order of paths. The first failure cancels the remaining
// probes and is returned.
func ProbeAll(ctx context.Context, paths []string, opts ...Option) ([]audio.StreamInfo, error) {
	infos := make([]audio.StreamInfo, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("probe %s: %w", path, err)
			}
			defer f.Close()

			f.mtx.Lock()
			infos[i] = f.info
			f.mtx.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}
