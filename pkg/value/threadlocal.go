// Copyright (c) 2017 OysterPack, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// ThreadLocalValue binds a distinct T per goroutine. Get fails with
// *InvalidValueError until the current goroutine has bound a value via
// Inject or SetAndRestore.
type ThreadLocalValue[T any] struct {
	slots sync.Map // goroutine id -> T
}

// NewThreadLocalValue returns an unbound ThreadLocalValue[T].
func NewThreadLocalValue[T any]() *ThreadLocalValue[T] {
	return &ThreadLocalValue[T]{}
}

func (t *ThreadLocalValue[T]) Get() (T, error) {
	if v, ok := t.slots.Load(goroutineID()); ok {
		return v.(T), nil
	}
	var zero T
	return zero, &InvalidValueError{Reason: "no value bound on the current goroutine"}
}

func (t *ThreadLocalValue[T]) Inject(v T) error {
	t.slots.Store(goroutineID(), v)
	return nil
}

func (t *ThreadLocalValue[T]) Uninject() error {
	t.slots.Delete(goroutineID())
	return nil
}

// SetAndRestore binds v on the current goroutine for the duration of fn,
// restoring whatever was previously bound (or leaving the slot unbound)
// once fn returns, including on panic.
func (t *ThreadLocalValue[T]) SetAndRestore(v T, fn func() error) error {
	id := goroutineID()
	prev, hadPrev := t.slots.Load(id)
	t.slots.Store(id, v)
	defer func() {
		if hadPrev {
			t.slots.Store(id, prev)
		} else {
			t.slots.Delete(id)
		}
	}()
	return fn()
}

// goroutineID recovers the calling goroutine's id by parsing the header
// line of its own stack trace. It is used only to key per-goroutine
// storage, never to identify a goroutine across its lifetime.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	// header looks like: "goroutine 123 [running]:"
	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
