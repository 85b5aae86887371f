// Package fuzztests houses Go fuzz harnesses that exercise the documentation
// pipeline (source -> markup -> section). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через парсер разметки и сегментатор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/markup, internal/section,
// internal/diag, internal/testkit.
package fuzztests
