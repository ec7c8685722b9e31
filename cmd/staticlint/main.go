// Команда staticlint - набор статических проверок сервиса compresseverything.
//
// Проверки подобраны под то, как устроен сервис:
//
//   - обработчики и репозитории работают с context.WithTimeout, поэтому
//     lostcancel следит за вызовом cancel, а httpresponse - за телом ответа
//     в тестах, которые ходят в поднятый сервер;
//   - ошибки хранилища не должны теряться: errcheck, nilness и shadow
//     (затенение err в цикле повторной генерации кода);
//   - хранилище в памяти держит sync.RWMutex: copylock и atomic;
//   - все анализаторы SA из staticcheck, ST1000 (комментарий к пакету)
//     и S1000 из simple;
//   - printf, assign, bools, buildtag и unreachable из golang.org/x/tools;
//   - noexit: процесс завершается только через run и logger.Fatal,
//     поэтому в main пакета main запрещены os.Exit и log.Fatal*.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"github.com/kisielk/errcheck/errcheck"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/tempizhere/compresseverything/cmd/staticlint/noexit"
)

// extraChecks - проверки из классов ST и S, которые включены поверх SA
var extraChecks = map[string]bool{
	"ST1000": true,
	"S1000":  true,
}

func main() {
	multichecker.Main(analyzers()...)
}

// analyzers собирает полный список проверок
func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		// контексты и HTTP
		lostcancel.Analyzer,
		httpresponse.Analyzer,
		// ошибки
		errcheck.Analyzer,
		nilness.Analyzer,
		shadow.Analyzer,
		// конкурентный доступ
		copylock.Analyzer,
		atomic.Analyzer,
		// общие
		printf.Analyzer,
		assign.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		unreachable.Analyzer,
		noexit.NoExitAnalyzer,
	}

	for _, a := range staticcheck.Analyzers {
		list = append(list, a.Analyzer)
	}
	for _, a := range stylecheck.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	return list
}
