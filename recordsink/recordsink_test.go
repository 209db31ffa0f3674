// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package recordsink_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rinihandini/Multithreading/recordsink"
)

func TestMemoryStagesUntilSave(t *testing.T) {
	t.Parallel()
	chk := require.New(t)

	var m recordsink.Memory
	chk.NoError(m.Insert(recordsink.Record{ID: "a", Payload: "first"}))
	chk.NoError(m.Insert(recordsink.Record{ID: "b", Payload: "second"}))

	chk.Equal(2, m.Staged())
	chk.Empty(m.Saved())

	chk.NoError(m.Save())
	chk.Equal(0, m.Staged())
	chk.Equal([]recordsink.Record{
		{ID: "a", Payload: "first"},
		{ID: "b", Payload: "second"},
	}, m.Saved())
}

func TestMemoryRejectsEmptyID(t *testing.T) {
	t.Parallel()
	chk := require.New(t)

	var m recordsink.Memory
	chk.ErrorIs(m.Insert(recordsink.Record{Payload: "no id"}), recordsink.ErrEmptyID)
	chk.Equal(0, m.Staged())
}

func TestMemorySaveWithNothingStaged(t *testing.T) {
	t.Parallel()
	chk := require.New(t)

	var m recordsink.Memory
	chk.NoError(m.Save())
	chk.Empty(m.Saved())
}

func TestMemoryConcurrentInsert(t *testing.T) {
	t.Parallel()
	chk := require.New(t)

	const (
		writers = 8
		each    = 16
	)
	var m recordsink.Memory
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				err := m.Insert(recordsink.Record{
					ID:      uuid.NewString(),
					Payload: fmt.Sprintf("writer %d record %d", w, i),
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	chk.NoError(m.Save())
	chk.Len(m.Saved(), writers*each)
}
