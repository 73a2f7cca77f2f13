package remote

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
  <title>chime remote</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    html, body { height: 100%; background: #14141f; color: #e6e6f0; font-family: monospace; }
    #app { max-width: 520px; margin: 0 auto; padding: 16px; display: flex; flex-direction: column; gap: 14px; height: 100%; }
    #status {
      position: fixed; top: 8px; right: 8px;
      padding: 3px 8px; border-radius: 4px; font-size: 11px;
      background: rgba(80,80,80,0.8); transition: opacity 0.3s; z-index: 10;
    }
    #status.connected { background: rgba(0,120,0,0.8); }
    #status.disconnected { background: rgba(180,0,0,0.8); }
    #track { text-align: center; min-height: 58px; }
    #title { font-size: 18px; font-weight: bold; }
    #artist { font-size: 13px; color: #9a9ab0; margin-top: 4px; }
    #album { font-size: 12px; color: #68688a; }
    #error { font-size: 11px; color: #e06c75; min-height: 14px; }
    #viz { width: 100%; height: 90px; background: #0c0c14; border-radius: 6px; }
    #bar { height: 14px; background: #26263a; border-radius: 7px; cursor: pointer; position: relative; overflow: hidden; }
    #fill { height: 100%; width: 0; background: #7aa2f7; border-radius: 7px; }
    #times { display: flex; justify-content: space-between; font-size: 12px; color: #9a9ab0; }
    .row { display: flex; gap: 8px; justify-content: center; }
    button {
      flex: 1; padding: 12px 0; font-family: monospace; font-size: 15px;
      background: #26263a; color: #e6e6f0; border: none; border-radius: 6px;
      cursor: pointer; touch-action: manipulation; -webkit-tap-highlight-color: transparent;
    }
    button:active { background: #3a3a55; }
    button.on { background: #7aa2f7; color: #14141f; }
    #volume { width: 100%; accent-color: #7aa2f7; }
    #tracks { flex: 1; overflow-y: auto; border-top: 1px solid #26263a; padding-top: 8px; }
    .t { padding: 8px 6px; font-size: 13px; cursor: pointer; border-radius: 4px; display: flex; justify-content: space-between; gap: 8px; }
    .t:active { background: #26263a; }
    .t.current { background: #26263a; color: #7aa2f7; }
    .t .d { color: #68688a; flex-shrink: 0; }
  </style>
</head>
<body>
  <div id="status">connecting...</div>
  <div id="app">
    <div id="track">
      <div id="title">Nothing playing</div>
      <div id="artist"></div>
      <div id="album"></div>
      <div id="error"></div>
    </div>
    <canvas id="viz"></canvas>
    <div id="bar"><div id="fill"></div></div>
    <div id="times"><span id="pos">0:00</span><span id="dur">0:00</span></div>
    <div class="row">
      <button id="prev">&#9198;</button>
      <button id="toggle">&#9199;</button>
      <button id="next">&#9197;</button>
    </div>
    <input id="volume" type="range" min="0" max="100" value="80">
    <div class="row">
      <button id="shuffle">shuf</button>
      <button id="repeat">rep</button>
      <button id="theme">theme</button>
      <button id="viz-btn">viz</button>
      <button id="sleep">sleep</button>
    </div>
    <div id="tracks"></div>
  </div>
  <script>
    let ws = null;
    let state = {};
    const $ = id => document.getElementById(id);

    function send(obj) {
      if (ws && ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(obj));
    }

    function fmt(s) {
      s = Math.max(0, Math.floor(s));
      return Math.floor(s / 60) + ':' + String(s % 60).padStart(2, '0');
    }

    function render(st) {
      state = st;
      $('title').textContent = st.track_title || 'Nothing playing';
      $('artist').textContent = st.track_artist || '';
      $('album').textContent = st.track_album || '';
      $('error').textContent = st.error || '';
      $('toggle').innerHTML = st.is_playing ? '&#9208;' : '&#9205;';
      $('pos').textContent = fmt(st.progress);
      let dur = fmt(st.duration);
      if (st.speed && st.speed !== 1) dur += ' ×' + st.speed.toFixed(2);
      if (st.sleep_remaining > 0) dur += ' ⏱' + fmt(st.sleep_remaining);
      $('dur').textContent = dur;
      $('fill').style.width = st.duration > 0 ? (100 * st.progress / st.duration) + '%' : '0';
      $('shuffle').classList.toggle('on', !!st.shuffle);
      $('repeat').textContent = 'rep:' + (st.repeat || 'Off');
      $('repeat').classList.toggle('on', st.repeat && st.repeat !== 'Off');
      $('theme').textContent = st.theme || 'theme';
      $('viz-btn').textContent = 'viz:' + (st.visualizer_mode || 'off');
      $('sleep').classList.toggle('on', st.sleep_remaining > 0);
      if (document.activeElement !== $('volume')) {
        $('volume').value = Math.round((st.volume || 0) * 100);
      }
      document.querySelectorAll('.t').forEach(el => {
        el.classList.toggle('current', Number(el.dataset.id) === st.track_id);
      });
    }

    function draw(frame) {
      const c = $('viz'), ctx = c.getContext('2d');
      c.width = c.clientWidth; c.height = c.clientHeight;
      ctx.clearRect(0, 0, c.width, c.height);
      ctx.fillStyle = '#7aa2f7';
      if (frame.mode === 'bars' && frame.bars) {
        const w = c.width / frame.bars.length;
        frame.bars.forEach((v, i) => {
          const h = v * c.height;
          ctx.fillRect(i * w, c.height - h, w - 1, h);
        });
        if (frame.peaks) {
          ctx.fillStyle = '#e6e6f0';
          frame.peaks.forEach((v, i) => {
            ctx.fillRect(i * w, c.height - v * c.height - 1, w - 1, 2);
          });
        }
      } else if (frame.mode === 'waveform' && frame.waveform) {
        ctx.strokeStyle = '#7aa2f7';
        ctx.beginPath();
        const w = c.width / frame.waveform.length;
        frame.waveform.forEach((v, i) => {
          const y = c.height / 2 - v * c.height / 2;
          i === 0 ? ctx.moveTo(0, y) : ctx.lineTo(i * w, y);
        });
        ctx.stroke();
      }
    }

    function connect() {
      const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
      ws = new WebSocket(proto + location.host + '/ws');
      ws.onopen = () => {
        const el = $('status');
        el.textContent = 'connected';
        el.className = 'connected';
        setTimeout(() => { el.style.opacity = '0'; }, 1500);
      };
      ws.onmessage = e => {
        const msg = JSON.parse(e.data);
        if (msg.type === 'state') render(msg);
        else if (msg.type === 'spectrum') draw(msg);
      };
      ws.onclose = () => {
        const el = $('status');
        el.textContent = 'disconnected';
        el.className = 'disconnected';
        el.style.opacity = '1';
        setTimeout(connect, 2000);
      };
    }

    async function loadTracks() {
      const res = await fetch('/api/tracks');
      const tracks = await res.json();
      const box = $('tracks');
      box.innerHTML = '';
      tracks.forEach(t => {
        const el = document.createElement('div');
        el.className = 't';
        el.dataset.id = t.id;
        const name = document.createElement('span');
        name.textContent = (t.artist ? t.artist + ' - ' : '') + t.title;
        const d = document.createElement('span');
        d.className = 'd';
        d.textContent = fmt(t.duration);
        el.append(name, d);
        el.onclick = () => send({cmd: 'select', id: t.id});
        box.appendChild(el);
      });
    }

    $('prev').onclick = () => send({cmd: 'prev'});
    $('toggle').onclick = () => send({cmd: 'toggle'});
    $('next').onclick = () => send({cmd: 'next'});
    $('shuffle').onclick = () => send({cmd: 'shuffle'});
    $('repeat').onclick = () => send({cmd: 'repeat'});
    $('theme').onclick = () => send({cmd: 'theme'});
    $('viz-btn').onclick = () => send({cmd: 'visualizer'});
    $('sleep').onclick = () => send({cmd: 'sleep'});
    $('volume').oninput = e => send({cmd: 'volume', v: Number(e.target.value) / 100});
    $('bar').onclick = e => {
      if (!state.duration) return;
      const r = e.currentTarget.getBoundingClientRect();
      send({cmd: 'seek', t: state.duration * (e.clientX - r.left) / r.width});
    };

    connect();
    loadTracks();
  </script>
</body>
</html>
`
