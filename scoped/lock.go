// Copyright 2026 The NATS Authors
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

package scoped

import "sync"

// WithLock runs fn holding m. The lock is released however fn exits,
// including a panic, which is then propagated.
func WithLock(m sync.Locker, fn func()) {
	m.Lock()
	defer m.Unlock()
	fn()
}

// WithRLock runs fn holding the read side of m.
func WithRLock(m *sync.RWMutex, fn func()) {
	WithLock(m.RLocker(), fn)
}
