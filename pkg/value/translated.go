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

// Translated returns a Value[T] computed by applying f to src's current
// value every time Get is called. A failure to resolve src propagates
// unchanged; a failure returned by f is wrapped in a *TranslationException.
func Translated[S, T any](src Value[S], f func(S) (T, error)) Value[T] {
	return translatedValue[S, T]{src: src, f: f}
}

type translatedValue[S, T any] struct {
	src Value[S]
	f   func(S) (T, error)
}

func (t translatedValue[S, T]) Get() (T, error) {
	var zero T
	s, err := t.src.Get()
	if err != nil {
		return zero, err
	}
	v, err := t.f(s)
	if err != nil {
		return zero, &TranslationException{Cause: err}
	}
	return v, nil
}

// ConstructionTranslator returns a Value[T] that, each time Get is called,
// resolves input, binds it onto target for the duration of factory, and
// restores target's previous binding before returning. This lets factory
// (or anything factory transitively calls) recover the input value via
// target.Get() without threading it through every intermediate call, while
// still supporting nested construction: the previous binding, if any, is
// guaranteed to be restored once factory returns, including on panic.
func ConstructionTranslator[S, T any](input Value[S], target *ThreadLocalValue[S], factory func(S) (T, error)) Value[T] {
	return &constructionTranslator[S, T]{input: input, target: target, factory: factory}
}

type constructionTranslator[S, T any] struct {
	input   Value[S]
	target  *ThreadLocalValue[S]
	factory func(S) (T, error)
}

func (c *constructionTranslator[S, T]) Get() (T, error) {
	var zero T
	s, err := c.input.Get()
	if err != nil {
		return zero, err
	}

	var result T
	var factoryErr error
	bindErr := c.target.SetAndRestore(s, func() error {
		result, factoryErr = c.factory(s)
		return nil
	})
	if bindErr != nil {
		return zero, bindErr
	}
	if factoryErr != nil {
		return zero, &TranslationException{Cause: factoryErr}
	}
	return result, nil
}
